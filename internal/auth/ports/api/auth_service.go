package api

import (
	"context"

	"hdnotes/internal/auth/domain/services"
)

// AuthUseCase определяет порт регистрации и входа.
type AuthUseCase interface {
	StartSignup(ctx context.Context, req services.SignupRequest) error

	CompleteSignup(ctx context.Context, email, code string) (*services.AuthResult, error)

	SignIn(ctx context.Context, email, password string) (*services.AuthResult, error)
}
