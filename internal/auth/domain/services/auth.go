// Package services содержит доменные правила и ошибки аутентификации.
package services

import (
	"time"

	"hdnotes/internal/auth/domain/entities"
)

// Доменные ограничения.
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
	MinBcryptCost     = 12
	DefaultOTPTTL     = 10 * time.Minute
	DefaultTokenTTL   = 7 * 24 * time.Hour
	OTPMin            = 100000
	OTPMax            = 999999
)

// SignupRequest - данные начала регистрации.
type SignupRequest struct {
	Name        string
	Email       string
	DateOfBirth string
	Password    string
}

// AuthResult - результат успешной регистрации или входа.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entities.User
}
