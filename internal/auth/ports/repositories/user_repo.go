package repositories

import (
	"context"

	"hdnotes/internal/auth/domain/entities"
)

// UserRepository определяет операции хранения пользователей.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	// FindProfileByID возвращает пользователя без хэша пароля и OTP.
	FindProfileByID(ctx context.Context, id string) (*entities.User, error)

	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	Save(ctx context.Context, user *entities.User) (*entities.User, error)
}
