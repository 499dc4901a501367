package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hdnotes/internal/auth/domain/entities"
	"hdnotes/internal/auth/domain/services"
	"hdnotes/internal/auth/ports/api"
	"hdnotes/internal/auth/ports/repositories"
	svc "hdnotes/internal/auth/ports/services"
	"hdnotes/pkg/logger"
)

const (
	methodGetUserProfile = "GetUserProfile"
	methodAuthenticate   = "Authenticate"

	msgRequestingProfile = "requesting user profile"
	msgProfileRetrieved  = "user profile successfully retrieved"
	msgTokenRejected     = "access token rejected"
	msgTokenOwnerMissing = "token owner no longer exists"

	msgErrFindingUserByID = "failed to find user by ID"

	errCtxFetchingProfile = "fetching user profile"
	errCtxVerifyingToken  = "verifying access token"
	errCtxLoadingOwner    = "loading token owner"
)

// UserUseCaseImpl реализует api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
	tokenSvc svc.TokenService
}

// NewUserUseCase создает сервис пользователя.
func NewUserUseCase(userRepo repositories.UserRepository, tokenSvc svc.TokenService) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
	}
}

// GetUserProfile возвращает профиль пользователя без секретов.
func (u *UserUseCaseImpl) GetUserProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUserProfile), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingProfile)

	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, services.ErrProfileNotFound)
	}

	user, err := u.userRepo.FindProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, services.ErrProfileNotFound)
		}
		log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	log.Debug(ctx, msgProfileRetrieved)
	return user, nil
}

// Authenticate проверяет токен и загружает владельца без хэша пароля и OTP.
func (u *UserUseCaseImpl) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))

	if token == "" {
		return nil, services.ErrMissingToken
	}

	userID, err := u.tokenSvc.Verify(ctx, token)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		if errors.Is(err, services.ErrExpiredToken) || errors.Is(err, services.ErrInvalidToken) {
			return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, err)
		}
		return nil, fmt.Errorf("%s: %w: %w", errCtxVerifyingToken, services.ErrInvalidToken, err)
	}

	user, err := u.GetUserProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			log.Debug(ctx, msgTokenOwnerMissing, zap.String("userID", userID))
			return nil, fmt.Errorf("%s: %w", errCtxLoadingOwner, services.ErrTokenUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", errCtxLoadingOwner, err)
	}

	return user, nil
}
