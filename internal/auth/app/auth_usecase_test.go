package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hdnotes/internal/auth/app"
	"hdnotes/internal/auth/domain/entities"
	"hdnotes/internal/auth/domain/services"
	"hdnotes/internal/auth/ports/api"
	"hdnotes/pkg/apperr"
)

var errDatabase = errors.New("database error")

const (
	userID   = "6c9a3c5e-2a6f-4f3f-b1c5-7e0c1c2e8b10"
	email    = "a@x.com"
	hash     = "hashed-password"
	otpCode  = "123456"
	tokenStr = "signed-token"
)

var (
	now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	dob = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	users    *mockUserRepository
	password *mockPasswordService
	tokens   *mockTokenService
	otp      *mockOTPService
	mailer   *mockMailSender
	clock    time.Time
	useCase  api.AuthUseCase
}

func newFixture() *fixture {
	f := &fixture{
		users:    new(mockUserRepository),
		password: new(mockPasswordService),
		tokens:   new(mockTokenService),
		otp:      new(mockOTPService),
		mailer:   new(mockMailSender),
		clock:    now,
	}
	f.useCase = app.NewAuthUseCase(f.users, f.password, f.tokens, f.otp, f.mailer, func() time.Time { return f.clock })
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.users.AssertExpectations(t)
	f.password.AssertExpectations(t)
	f.tokens.AssertExpectations(t)
	f.otp.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func validSignup() services.SignupRequest {
	return services.SignupRequest{
		Name:        "A",
		Email:       email,
		DateOfBirth: "2000-01-01",
		Password:    "secret1",
	}
}

func pendingUser(verified bool) *entities.User {
	return &entities.User{
		ID:         userID,
		Name:       "A",
		Email:      email,
		Account:    entities.LocalAccount{PasswordHash: hash, DateOfBirth: dob},
		IsVerified: verified,
		PendingOTP: &entities.OTP{Code: otpCode, ExpiresAt: now.Add(10 * time.Minute)},
	}
}

func TestStartSignupNewUser(t *testing.T) {
	f := newFixture()
	issued := entities.OTP{Code: otpCode, ExpiresAt: now.Add(10 * time.Minute)}

	f.users.On("FindByEmail", mock.Anything, email).Return(nil, entities.ErrUserNotFound).Once()
	f.password.On("Hash", mock.Anything, "secret1").Return(hash, nil).Once()
	f.otp.On("Issue", mock.Anything).Return(issued, nil).Once()
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		acc, ok := u.Local()
		return ok &&
			u.Email == email &&
			u.Name == "A" &&
			!u.IsVerified &&
			acc.PasswordHash == hash &&
			acc.DateOfBirth.Equal(dob) &&
			u.PendingOTP != nil &&
			u.PendingOTP.Code == otpCode &&
			u.PendingOTP.ExpiresAt.Equal(now.Add(10*time.Minute))
	})).Return(pendingUser(false), nil).Once()
	f.mailer.On("SendVerificationEmail", mock.Anything, email, otpCode, "A").Return(nil).Once()

	req := validSignup()
	req.Email = "  A@X.com "
	require.NoError(t, f.useCase.StartSignup(context.Background(), req))

	f.assertExpectations(t)
}

func TestStartSignupOverwritesUnverifiedUser(t *testing.T) {
	f := newFixture()
	existing := pendingUser(false)
	existing.Name = "Old"
	existing.PendingOTP = &entities.OTP{Code: "999999", ExpiresAt: now.Add(-time.Hour)}
	issued := entities.OTP{Code: otpCode, ExpiresAt: now.Add(10 * time.Minute)}

	f.users.On("FindByEmail", mock.Anything, email).Return(existing, nil).Once()
	f.password.On("Hash", mock.Anything, "secret1").Return("new-hash", nil).Once()
	f.otp.On("Issue", mock.Anything).Return(issued, nil).Once()
	f.users.On("Save", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		acc, _ := u.Local()
		return u.ID == userID && u.Name == "A" && acc.PasswordHash == "new-hash" && u.PendingOTP.Code == otpCode
	})).Return(existing, nil).Once()
	f.mailer.On("SendVerificationEmail", mock.Anything, email, otpCode, "A").Return(nil).Once()

	require.NoError(t, f.useCase.StartSignup(context.Background(), validSignup()))

	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestStartSignupValidation(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*services.SignupRequest)
		want   error
	}{
		{"missing name", func(r *services.SignupRequest) { r.Name = "  " }, services.ErrAllFieldsRequired},
		{"missing email", func(r *services.SignupRequest) { r.Email = "" }, services.ErrAllFieldsRequired},
		{"missing date of birth", func(r *services.SignupRequest) { r.DateOfBirth = "" }, services.ErrAllFieldsRequired},
		{"missing password", func(r *services.SignupRequest) { r.Password = "" }, services.ErrAllFieldsRequired},
		{"short password", func(r *services.SignupRequest) { r.Password = "12345" }, services.ErrPasswordTooShort},
		{"invalid email", func(r *services.SignupRequest) { r.Email = "not-an-email" }, services.ErrInvalidEmail},
		{"invalid date", func(r *services.SignupRequest) { r.DateOfBirth = "01/01/2000" }, services.ErrInvalidDateOfBirth},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			req := validSignup()
			tc.modify(&req)

			err := f.useCase.StartSignup(context.Background(), req)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

			f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
		})
	}
}

func TestStartSignupAcceptsISODateTime(t *testing.T) {
	f := newFixture()
	f.users.On("FindByEmail", mock.Anything, email).Return(nil, entities.ErrUserNotFound).Once()
	f.password.On("Hash", mock.Anything, "secret1").Return(hash, nil).Once()
	f.otp.On("Issue", mock.Anything).Return(entities.OTP{Code: otpCode, ExpiresAt: now}, nil).Once()
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		acc, _ := u.Local()
		return acc.DateOfBirth.Equal(dob)
	})).Return(pendingUser(false), nil).Once()
	f.mailer.On("SendVerificationEmail", mock.Anything, email, otpCode, "A").Return(nil).Once()

	req := validSignup()
	req.DateOfBirth = "2000-01-01T00:00:00.000Z"
	require.NoError(t, f.useCase.StartSignup(context.Background(), req))
	f.assertExpectations(t)
}

func TestStartSignupVerifiedUserExists(t *testing.T) {
	f := newFixture()
	f.users.On("FindByEmail", mock.Anything, email).Return(pendingUser(true), nil).Once()

	err := f.useCase.StartSignup(context.Background(), validSignup())
	require.ErrorIs(t, err, services.ErrUserAlreadyExists)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	f.password.AssertNotCalled(t, "Hash", mock.Anything, mock.Anything)
	f.mailer.AssertNotCalled(t, "SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStartSignupDependencyFailures(t *testing.T) {
	t.Run("lookup fails", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByEmail", mock.Anything, email).Return(nil, errDatabase).Once()

		err := f.useCase.StartSignup(context.Background(), validSignup())
		require.ErrorIs(t, err, errDatabase)
	})

	t.Run("create fails", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByEmail", mock.Anything, email).Return(nil, entities.ErrUserNotFound).Once()
		f.password.On("Hash", mock.Anything, "secret1").Return(hash, nil).Once()
		f.otp.On("Issue", mock.Anything).Return(entities.OTP{Code: otpCode, ExpiresAt: now}, nil).Once()
		f.users.On("Create", mock.Anything, mock.Anything).Return(nil, errDatabase).Once()

		err := f.useCase.StartSignup(context.Background(), validSignup())
		require.ErrorIs(t, err, errDatabase)
		f.mailer.AssertNotCalled(t, "SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("mail fails", func(t *testing.T) {
		f := newFixture()
		mailErr := errors.New("smtp unavailable")
		f.users.On("FindByEmail", mock.Anything, email).Return(nil, entities.ErrUserNotFound).Once()
		f.password.On("Hash", mock.Anything, "secret1").Return(hash, nil).Once()
		f.otp.On("Issue", mock.Anything).Return(entities.OTP{Code: otpCode, ExpiresAt: now}, nil).Once()
		f.users.On("Create", mock.Anything, mock.Anything).Return(pendingUser(false), nil).Once()
		f.mailer.On("SendVerificationEmail", mock.Anything, email, otpCode, "A").Return(mailErr).Once()

		err := f.useCase.StartSignup(context.Background(), validSignup())
		require.ErrorIs(t, err, services.ErrSendOTPFailed)
		require.ErrorIs(t, err, mailErr)
		assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))
		f.mailer.AssertNumberOfCalls(t, "SendVerificationEmail", 1)
	})
}

func TestCompleteSignup(t *testing.T) {
	t.Run("correct code before expiry", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByEmail", mock.Anything, email).Return(pendingUser(false), nil).Once()
		f.users.On("Save", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.IsVerified && u.PendingOTP == nil
		})).Return(pendingUser(true), nil).Once()
		f.tokens.On("Issue", mock.Anything, userID).Return(tokenStr, now.Add(7*24*time.Hour), nil).Once()

		result, err := f.useCase.CompleteSignup(context.Background(), " A@x.com", otpCode)
		require.NoError(t, err)
		assert.Equal(t, tokenStr, result.Token)
		assert.True(t, result.User.IsVerified)
		assert.Nil(t, result.User.PendingOTP)
		acc, _ := result.User.Local()
		assert.Empty(t, acc.PasswordHash)
		f.assertExpectations(t)
	})

	t.Run("wrong code", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByEmail", mock.Anything, email).Return(pendingUser(false), nil).Once()

		_, err := f.useCase.CompleteSignup(context.Background(), email, "000000")
		require.ErrorIs(t, err, entities.ErrInvalidOTP)
		f.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("expired code", func(t *testing.T) {
		f := newFixture()
		f.clock = now.Add(10 * time.Minute)
		f.users.On("FindByEmail", mock.Anything, email).Return(pendingUser(false), nil).Once()

		_, err := f.useCase.CompleteSignup(context.Background(), email, otpCode)
		require.ErrorIs(t, err, entities.ErrOTPExpired)
		assert.NotErrorIs(t, err, entities.ErrInvalidOTP)
	})

	t.Run("code already consumed", func(t *testing.T) {
		f := newFixture()
		verified := pendingUser(true)
		verified.PendingOTP = nil
		f.users.On("FindByEmail", mock.Anything, email).Return(verified, nil).Once()

		_, err := f.useCase.CompleteSignup(context.Background(), email, otpCode)
		require.ErrorIs(t, err, entities.ErrInvalidOTP)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByEmail", mock.Anything, email).Return(nil, entities.ErrUserNotFound).Once()

		_, err := f.useCase.CompleteSignup(context.Background(), email, otpCode)
		require.ErrorIs(t, err, services.ErrSignupUserNotFound)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newFixture()

		_, err := f.useCase.CompleteSignup(context.Background(), "", otpCode)
		require.ErrorIs(t, err, services.ErrEmailAndOTPMissing)

		_, err = f.useCase.CompleteSignup(context.Background(), email, " ")
		require.ErrorIs(t, err, services.ErrEmailAndOTPMissing)
	})

	t.Run("token issue fails", func(t *testing.T) {
		f := newFixture()
		tokenErr := errors.New("signing failed")
		f.users.On("FindByEmail", mock.Anything, email).Return(pendingUser(false), nil).Once()
		f.users.On("Save", mock.Anything, mock.Anything).Return(pendingUser(true), nil).Once()
		f.tokens.On("Issue", mock.Anything, userID).Return("", time.Time{}, tokenErr).Once()

		_, err := f.useCase.CompleteSignup(context.Background(), email, otpCode)
		require.ErrorIs(t, err, tokenErr)
	})
}

func TestSignIn(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByEmail", mock.Anything, email).Return(pendingUser(true), nil).Once()
		f.password.On("Verify", mock.Anything, "secret1", hash).Return(true, nil).Once()
		f.tokens.On("Issue", mock.Anything, userID).Return(tokenStr, now.Add(7*24*time.Hour), nil).Once()

		result, err := f.useCase.SignIn(context.Background(), "A@X.COM", "secret1")
		require.NoError(t, err)
		assert.Equal(t, tokenStr, result.Token)
		assert.Equal(t, userID, result.User.ID)
		f.assertExpectations(t)
	})

	t.Run("unverified user is rejected even with correct password", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByEmail", mock.Anything, email).Return(pendingUser(false), nil).Once()

		_, err := f.useCase.SignIn(context.Background(), email, "secret1")
		require.ErrorIs(t, err, services.ErrInvalidCredentials)
		f.password.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
		f.tokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByEmail", mock.Anything, email).Return(nil, entities.ErrUserNotFound).Once()

		_, err := f.useCase.SignIn(context.Background(), email, "secret1")
		require.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByEmail", mock.Anything, email).Return(pendingUser(true), nil).Once()
		f.password.On("Verify", mock.Anything, "wrong", hash).Return(false, nil).Once()

		_, err := f.useCase.SignIn(context.Background(), email, "wrong")
		require.ErrorIs(t, err, services.ErrInvalidCredentials)
		msg, _ := apperr.MessageOf(err)
		assert.Equal(t, "Invalid credentials", msg)
	})

	t.Run("federated account has no password", func(t *testing.T) {
		f := newFixture()
		user := pendingUser(true)
		user.Account = entities.FederatedAccount{ProviderID: "google-1"}
		f.users.On("FindByEmail", mock.Anything, email).Return(user, nil).Once()

		_, err := f.useCase.SignIn(context.Background(), email, "secret1")
		require.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newFixture()

		_, err := f.useCase.SignIn(context.Background(), email, "")
		require.ErrorIs(t, err, services.ErrCredentialsMissing)

		_, err = f.useCase.SignIn(context.Background(), "", "secret1")
		require.ErrorIs(t, err, services.ErrCredentialsMissing)
	})

	t.Run("store failure is not reported as bad credentials", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByEmail", mock.Anything, email).Return(nil, errDatabase).Once()

		_, err := f.useCase.SignIn(context.Background(), email, "secret1")
		require.ErrorIs(t, err, errDatabase)
		assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
	})
}
