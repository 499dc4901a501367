package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hdnotes/internal/auth/app"
	"hdnotes/internal/auth/domain/entities"
	"hdnotes/internal/auth/domain/services"
	"hdnotes/pkg/apperr"
)

func profile() *entities.User {
	return &entities.User{
		ID:         userID,
		Name:       "A",
		Email:      email,
		Account:    entities.LocalAccount{DateOfBirth: dob},
		IsVerified: true,
	}
}

func TestGetUserProfile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindProfileByID", mock.Anything, userID).Return(profile(), nil).Once()

		user, err := app.NewUserUseCase(users, new(mockTokenService)).GetUserProfile(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, email, user.Email)
		users.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindProfileByID", mock.Anything, userID).Return(nil, entities.ErrUserNotFound).Once()

		_, err := app.NewUserUseCase(users, new(mockTokenService)).GetUserProfile(context.Background(), userID)
		require.ErrorIs(t, err, services.ErrProfileNotFound)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("malformed id skips the store", func(t *testing.T) {
		users := new(mockUserRepository)

		_, err := app.NewUserUseCase(users, new(mockTokenService)).GetUserProfile(context.Background(), "nope")
		require.ErrorIs(t, err, services.ErrProfileNotFound)
		users.AssertNotCalled(t, "FindProfileByID", mock.Anything, mock.Anything)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid token loads owner", func(t *testing.T) {
		users := new(mockUserRepository)
		tokens := new(mockTokenService)
		tokens.On("Verify", mock.Anything, tokenStr).Return(userID, nil).Once()
		users.On("FindProfileByID", mock.Anything, userID).Return(profile(), nil).Once()

		user, err := app.NewUserUseCase(users, tokens).Authenticate(context.Background(), tokenStr)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := app.NewUserUseCase(new(mockUserRepository), new(mockTokenService)).
			Authenticate(context.Background(), "")
		require.ErrorIs(t, err, services.ErrMissingToken)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("expired token", func(t *testing.T) {
		tokens := new(mockTokenService)
		tokens.On("Verify", mock.Anything, tokenStr).Return("", services.ErrExpiredToken).Once()

		_, err := app.NewUserUseCase(new(mockUserRepository), tokens).Authenticate(context.Background(), tokenStr)
		require.ErrorIs(t, err, services.ErrExpiredToken)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("owner deleted", func(t *testing.T) {
		users := new(mockUserRepository)
		tokens := new(mockTokenService)
		tokens.On("Verify", mock.Anything, tokenStr).Return(userID, nil).Once()
		users.On("FindProfileByID", mock.Anything, userID).Return(nil, entities.ErrUserNotFound).Once()

		_, err := app.NewUserUseCase(users, tokens).Authenticate(context.Background(), tokenStr)
		require.ErrorIs(t, err, services.ErrTokenUserNotFound)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("subject is not a user id", func(t *testing.T) {
		users := new(mockUserRepository)
		tokens := new(mockTokenService)
		tokens.On("Verify", mock.Anything, tokenStr).Return("not-a-uuid", nil).Once()

		_, err := app.NewUserUseCase(users, tokens).Authenticate(context.Background(), tokenStr)
		require.ErrorIs(t, err, services.ErrTokenUserNotFound)
		assert.NotErrorIs(t, err, services.ErrProfileNotFound)
		users.AssertNotCalled(t, "FindProfileByID", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		users := new(mockUserRepository)
		tokens := new(mockTokenService)
		tokens.On("Verify", mock.Anything, tokenStr).Return(userID, nil).Once()
		users.On("FindProfileByID", mock.Anything, userID).Return(nil, errDatabase).Once()

		_, err := app.NewUserUseCase(users, tokens).Authenticate(context.Background(), tokenStr)
		require.ErrorIs(t, err, errDatabase)
		assert.Equal(t, apperr.KindUnknown, apperr.KindOf(err))
	})
}
