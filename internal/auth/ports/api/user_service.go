package api

import (
	"context"

	"hdnotes/internal/auth/domain/entities"
)

// UserUseCase определяет порт пользовательских операций.
type UserUseCase interface {
	GetUserProfile(ctx context.Context, userID string) (*entities.User, error)

	// Authenticate проверяет bearer-токен и загружает его владельца.
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}
