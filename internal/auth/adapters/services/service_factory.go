// Package services содержит реализации паролей, токенов и одноразовых кодов.
package services

import (
	"time"

	"hdnotes/internal/auth/ports/services"
)

// FactoryOptions задает параметры сервисов аутентификации.
type FactoryOptions struct {
	JWTSecret  string
	TokenTTL   time.Duration
	OTPTTL     time.Duration
	BcryptCost int
	Now        func() time.Time
}

// ServiceFactory создает сервисы аутентификации с общими часами.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
	otpService      services.OTPService
}

// NewServiceFactory создает фабрику сервисов.
func NewServiceFactory(opts FactoryOptions) *ServiceFactory {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &ServiceFactory{
		passwordService: NewBcrypt(opts.BcryptCost),
		tokenService:    NewJWT(opts.JWTSecret, opts.TokenTTL, now),
		otpService:      NewOTP(opts.OTPTTL, now),
	}
}

// PasswordService возвращает сервис паролей.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис токенов.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}

// OTPService возвращает сервис одноразовых кодов.
func (f *ServiceFactory) OTPService() services.OTPService {
	return f.otpService
}
