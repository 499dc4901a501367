package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"hdnotes/internal/auth/domain/services"
	svc "hdnotes/internal/auth/ports/services"
)

const (
	errMsgFailedToGenerateHash = "failed to generate password hash"
	errMsgErrorComparingHash   = "error comparing password with hash"
)

// Ошибки сервиса паролей.
var (
	ErrEmptyPassword = errors.New("password is empty")
	ErrHashingFailed = errors.New("failed to hash password")
)

// ServiceBcrypt реализует PasswordService на bcrypt.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает сервис bcrypt. Стоимость ниже MinBcryptCost поднимается до нее.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < services.MinBcryptCost {
		cost = services.MinBcryptCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Cost возвращает используемую стоимость хэширования.
func (s *ServiceBcrypt) Cost() int {
	return s.cost
}

// Hash хэширует пароль с солью.
func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errMsgFailedToGenerateHash, ErrHashingFailed, err)
	}

	return string(hashed), nil
}

// Verify сравнивает пароль с хэшем.
func (s *ServiceBcrypt) Verify(_ context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", errMsgErrorComparingHash, err)
	}

	return true, nil
}
