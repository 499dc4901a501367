package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hdnotes/internal/api/ports/ratelimit"
	authentities "hdnotes/internal/auth/domain/entities"
	"hdnotes/internal/auth/domain/services"
	noteentities "hdnotes/internal/notes/domain/entities"
)

type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) StartSignup(ctx context.Context, req services.SignupRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthUseCase) CompleteSignup(ctx context.Context, email, code string) (*services.AuthResult, error) {
	args := m.Called(ctx, email, code)
	if res, ok := args.Get(0).(*services.AuthResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthUseCase) SignIn(ctx context.Context, email, password string) (*services.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if res, ok := args.Get(0).(*services.AuthResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) GetUserProfile(ctx context.Context, userID string) (*authentities.User, error) {
	args := m.Called(ctx, userID)
	if user, ok := args.Get(0).(*authentities.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserUseCase) Authenticate(ctx context.Context, token string) (*authentities.User, error) {
	args := m.Called(ctx, token)
	if user, ok := args.Get(0).(*authentities.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNoteUseCase struct {
	mock.Mock
}

func (m *mockNoteUseCase) ListNotes(ctx context.Context, ownerID string) ([]*noteentities.Note, error) {
	args := m.Called(ctx, ownerID)
	if notes, ok := args.Get(0).([]*noteentities.Note); ok {
		return notes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteUseCase) CreateNote(ctx context.Context, ownerID, title, content string) (*noteentities.Note, error) {
	args := m.Called(ctx, ownerID, title, content)
	if note, ok := args.Get(0).(*noteentities.Note); ok {
		return note, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteUseCase) UpdateNote(ctx context.Context, ownerID, noteID, title, content string) (*noteentities.Note, error) {
	args := m.Called(ctx, ownerID, noteID, title, content)
	if note, ok := args.Get(0).(*noteentities.Note); ok {
		return note, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteUseCase) DeleteNote(ctx context.Context, ownerID, noteID string) error {
	return m.Called(ctx, ownerID, noteID).Error(0)
}

type mockLimiter struct {
	mock.Mock
}

func (m *mockLimiter) Allow(ctx context.Context, key string) (ratelimit.Result, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(ratelimit.Result), args.Error(1)
}

type stubStore struct {
	status string
}

func (s stubStore) Status(context.Context) string {
	return s.status
}
