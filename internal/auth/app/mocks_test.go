package app_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"hdnotes/internal/auth/domain/entities"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entities.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entities.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) FindProfileByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entities.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if created, ok := args.Get(0).(*entities.User); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) Save(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if saved, ok := args.Get(0).(*entities.User); ok {
		return saved, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(ctx context.Context, userID string) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) Verify(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type mockOTPService struct {
	mock.Mock
}

func (m *mockOTPService) Issue(ctx context.Context) (entities.OTP, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.OTP), args.Error(1)
}

type mockMailSender struct {
	mock.Mock
}

func (m *mockMailSender) SendVerificationEmail(ctx context.Context, recipient, code, name string) error {
	args := m.Called(ctx, recipient, code, name)
	return args.Error(0)
}
