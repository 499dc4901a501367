package entities

import (
	"crypto/subtle"
	"time"

	"hdnotes/pkg/apperr"
)

// Ошибки проверки одноразового кода.
var (
	ErrInvalidOTP = apperr.New(apperr.KindValidation, "Invalid OTP")
	ErrOTPExpired = apperr.New(apperr.KindValidation, "OTP has expired")
)

// OTP - одноразовый код подтверждения email.
type OTP struct {
	Code      string
	ExpiresAt time.Time
}

// Check проверяет код: несовпадение - ErrInvalidOTP,
// совпадение при now >= ExpiresAt - ErrOTPExpired.
func (o *OTP) Check(code string, now time.Time) error {
	if o == nil || o.Code == "" || code == "" {
		return ErrInvalidOTP
	}
	if subtle.ConstantTimeCompare([]byte(o.Code), []byte(code)) != 1 {
		return ErrInvalidOTP
	}
	if !now.Before(o.ExpiresAt) {
		return ErrOTPExpired
	}
	return nil
}
