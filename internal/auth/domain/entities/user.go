package entities

import (
	"errors"
	"strings"
	"time"
)

// Ошибки хранилища пользователей.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
)

// DateLayout - формат даты рождения в API.
const DateLayout = "2006-01-02"

// Account - способ входа пользователя: LocalAccount или FederatedAccount.
type Account interface {
	accountKind() string
}

// LocalAccount - учетная запись с паролем.
type LocalAccount struct {
	PasswordHash string
	DateOfBirth  time.Time
}

func (LocalAccount) accountKind() string { return "local" }

// FederatedAccount - учетная запись внешнего провайдера идентификации.
type FederatedAccount struct {
	ProviderID  string
	DateOfBirth *time.Time
}

func (FederatedAccount) accountKind() string { return "federated" }

// User представляет пользователя сервиса.
type User struct {
	ID         string
	Name       string
	Email      string
	Account    Account
	IsVerified bool
	PendingOTP *OTP
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Local возвращает локальную учетную запись, если она есть.
func (u *User) Local() (LocalAccount, bool) {
	acc, ok := u.Account.(LocalAccount)
	return acc, ok
}

// DateOfBirth возвращает дату рождения, если она известна.
func (u *User) DateOfBirth() *time.Time {
	switch acc := u.Account.(type) {
	case LocalAccount:
		dob := acc.DateOfBirth
		return &dob
	case FederatedAccount:
		return acc.DateOfBirth
	default:
		return nil
	}
}

// NormalizeEmail приводит email к каноническому виду.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
