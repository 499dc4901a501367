// Package app содержит сценарии регистрации, входа и работы с профилем.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"hdnotes/internal/auth/domain/entities"
	"hdnotes/internal/auth/domain/services"
	"hdnotes/internal/auth/ports/api"
	"hdnotes/internal/auth/ports/repositories"
	svc "hdnotes/internal/auth/ports/services"
	"hdnotes/pkg/logger"
)

const (
	methodStartSignup    = "StartSignup"
	methodCompleteSignup = "CompleteSignup"
	methodSignIn         = "SignIn"

	msgStartSignup          = "starting signup"
	msgValidationFailed     = "signup request rejected"
	msgVerifiedUserExists   = "verified user already exists"
	msgReRegistration       = "overwriting unverified user"
	msgOTPDispatched        = "otp dispatched"
	msgCompleteSignup       = "completing signup"
	msgOTPRejected          = "otp rejected"
	msgUserVerified         = "user verified"
	msgSignInAttempt        = "sign in attempt"
	msgSignInRejected       = "sign in rejected"
	msgUserSignedIn         = "user signed in"
	msgErrFindingUser       = "error finding user by email"
	msgErrHashPassword      = "failed to hash password"
	msgErrIssueOTP          = "failed to issue otp"
	msgErrStoreUser         = "failed to store user"
	msgErrSendEmail         = "failed to send verification email"
	msgErrVerifyingPassword = "error verifying password"
	msgErrIssueToken        = "failed to issue token"

	errCtxValidating        = "validating signup request"
	errCtxCheckingUser      = "checking existing user"
	errCtxHashingPassword   = "hashing password"
	errCtxIssuingOTP        = "issuing otp"
	errCtxStoringUser       = "storing user"
	errCtxSendingEmail      = "sending verification email"
	errCtxFindingUser       = "finding user"
	errCtxCheckingOTP       = "checking otp"
	errCtxVerifyingUser     = "verifying user"
	errCtxInvalidCreds      = "invalid credentials"
	errCtxVerifyingPassword = "verifying password"
	errCtxIssuingToken      = "issuing token"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthUseCaseImpl реализует api.AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	otpSvc      svc.OTPService
	mailer      svc.MailSender
	now         func() time.Time
}

// NewAuthUseCase создает сервис регистрации и входа.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	otpSvc svc.OTPService,
	mailer svc.MailSender,
	now func() time.Time,
) api.AuthUseCase {
	if now == nil {
		now = time.Now
	}
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		mailer:      mailer,
		now:         now,
	}
}

// StartSignup создает или перезаписывает неподтвержденного пользователя и отправляет код.
func (a *AuthUseCaseImpl) StartSignup(ctx context.Context, req services.SignupRequest) error {
	email := entities.NormalizeEmail(req.Email)
	log := logger.Log(ctx).With(zap.String("method", methodStartSignup), zap.String("email", email))
	log.Debug(ctx, msgStartSignup)

	name := strings.TrimSpace(req.Name)
	dob, err := validateSignup(name, email, req.DateOfBirth, req.Password)
	if err != nil {
		log.Debug(ctx, msgValidationFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	existing, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existing != nil && existing.IsVerified {
		log.Debug(ctx, msgVerifiedUserExists)
		return fmt.Errorf("%s: %w", errCtxCheckingUser, services.ErrUserAlreadyExists)
	}

	hash, err := a.passwordSvc.Hash(ctx, req.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	otp, err := a.otpSvc.Issue(ctx)
	if err != nil {
		log.Error(ctx, msgErrIssueOTP, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxIssuingOTP, err)
	}

	account := entities.LocalAccount{PasswordHash: hash, DateOfBirth: dob}

	if existing != nil {
		log.Debug(ctx, msgReRegistration, zap.String("userID", existing.ID))
		existing.Name = name
		existing.Account = account
		existing.PendingOTP = &otp
		_, err = a.userRepo.Save(ctx, existing)
	} else {
		_, err = a.userRepo.Create(ctx, &entities.User{
			Name:       name,
			Email:      email,
			Account:    account,
			PendingOTP: &otp,
		})
	}
	if err != nil {
		if errors.Is(err, entities.ErrUserAlreadyExists) {
			return fmt.Errorf("%s: %w", errCtxStoringUser, services.ErrUserAlreadyExists)
		}
		log.Error(ctx, msgErrStoreUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxStoringUser, err)
	}

	if err := a.mailer.SendVerificationEmail(ctx, email, otp.Code, name); err != nil {
		log.Error(ctx, msgErrSendEmail, zap.Error(err))
		return fmt.Errorf("%s: %w: %w", errCtxSendingEmail, services.ErrSendOTPFailed, err)
	}

	log.Info(ctx, msgOTPDispatched, zap.Time("expiresAt", otp.ExpiresAt))
	return nil
}

// CompleteSignup проверяет код, подтверждает пользователя и выпускает токен.
func (a *AuthUseCaseImpl) CompleteSignup(ctx context.Context, email, code string) (*services.AuthResult, error) {
	email = entities.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	log := logger.Log(ctx).With(zap.String("method", methodCompleteSignup), zap.String("email", email))
	log.Debug(ctx, msgCompleteSignup)

	if email == "" || code == "" {
		return nil, services.ErrEmailAndOTPMissing
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxFindingUser, services.ErrSignupUserNotFound)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if err := user.PendingOTP.Check(code, a.now()); err != nil {
		log.Debug(ctx, msgOTPRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingOTP, err)
	}

	user.IsVerified = true
	user.PendingOTP = nil

	saved, err := a.userRepo.Save(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrStoreUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingUser, err)
	}

	result, err := a.issue(ctx, saved)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, msgUserVerified, zap.String("userID", saved.ID))
	return result, nil
}

// SignIn проверяет пароль подтвержденного пользователя и выпускает токен.
func (a *AuthUseCaseImpl) SignIn(ctx context.Context, email, password string) (*services.AuthResult, error) {
	email = entities.NormalizeEmail(email)
	log := logger.Log(ctx).With(zap.String("method", methodSignIn), zap.String("email", email))
	log.Debug(ctx, msgSignInAttempt)

	if email == "" || password == "" {
		return nil, services.ErrCredentialsMissing
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgSignInRejected, zap.String("reason", "unknown email"))
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCreds, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if !user.IsVerified {
		log.Debug(ctx, msgSignInRejected, zap.String("reason", "unverified"))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCreds, services.ErrInvalidCredentials)
	}

	account, ok := user.Local()
	if !ok || account.PasswordHash == "" {
		log.Debug(ctx, msgSignInRejected, zap.String("reason", "no password"))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCreds, services.ErrInvalidCredentials)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, account.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgSignInRejected, zap.String("reason", "password mismatch"))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCreds, services.ErrInvalidCredentials)
	}

	result, err := a.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, msgUserSignedIn, zap.String("userID", user.ID))
	return result, nil
}

func (a *AuthUseCaseImpl) issue(ctx context.Context, user *entities.User) (*services.AuthResult, error) {
	token, expiresAt, err := a.tokenSvc.Issue(ctx, user.ID)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrIssueToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	user.PendingOTP = nil
	if acc, ok := user.Local(); ok {
		acc.PasswordHash = ""
		user.Account = acc
	}

	return &services.AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// validateSignup проверяет поля регистрации и разбирает дату рождения.
func validateSignup(name, email, dateOfBirth, password string) (time.Time, error) {
	dateOfBirth = strings.TrimSpace(dateOfBirth)
	if name == "" || email == "" || dateOfBirth == "" || password == "" {
		return time.Time{}, services.ErrAllFieldsRequired
	}
	if !emailRegex.MatchString(email) {
		return time.Time{}, services.ErrInvalidEmail
	}
	if len([]rune(password)) < services.MinPasswordLength {
		return time.Time{}, services.ErrPasswordTooShort
	}
	if len(password) > services.MaxPasswordBytes {
		return time.Time{}, services.ErrPasswordTooLong
	}
	return parseDateOfBirth(dateOfBirth)
}

func parseDateOfBirth(value string) (time.Time, error) {
	if dob, err := time.Parse(entities.DateLayout, value); err == nil {
		return dob, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		y, m, d := ts.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, services.ErrInvalidDateOfBirth
}
