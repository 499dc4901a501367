package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"

	"hdnotes/internal/auth/domain/entities"
	"hdnotes/internal/auth/domain/services"
	svc "hdnotes/internal/auth/ports/services"
)

const errCtxGeneratingOTP = "generating otp"

// ServiceOTP выпускает шестизначные коды с фиксированным сроком действия.
type ServiceOTP struct {
	ttl    time.Duration
	now    func() time.Time
	random io.Reader
}

// NewOTP создает сервис кодов. Нулевой ttl заменяется на десять минут.
func NewOTP(ttl time.Duration, now func() time.Time) svc.OTPService {
	return newOTP(ttl, now, rand.Reader)
}

func newOTP(ttl time.Duration, now func() time.Time, random io.Reader) *ServiceOTP {
	if ttl <= 0 {
		ttl = services.DefaultOTPTTL
	}
	if now == nil {
		now = time.Now
	}
	return &ServiceOTP{ttl: ttl, now: now, random: random}
}

// Generate возвращает равномерно распределенный код из диапазона 100000-999999.
func (s *ServiceOTP) Generate() (string, error) {
	span := big.NewInt(services.OTPMax - services.OTPMin + 1)
	n, err := rand.Int(s.random, span)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtxGeneratingOTP, err)
	}
	return strconv.FormatInt(n.Int64()+services.OTPMin, 10), nil
}

// Issue выпускает код со сроком действия now+ttl.
func (s *ServiceOTP) Issue(_ context.Context) (entities.OTP, error) {
	code, err := s.Generate()
	if err != nil {
		return entities.OTP{}, err
	}
	return entities.OTP{Code: code, ExpiresAt: s.now().Add(s.ttl)}, nil
}
