package services

import "hdnotes/pkg/apperr"

// Ошибки регистрации.
var (
	ErrAllFieldsRequired  = apperr.New(apperr.KindValidation, "All fields are required")
	ErrPasswordTooShort   = apperr.New(apperr.KindValidation, "Password must be at least 6 characters")
	ErrPasswordTooLong    = apperr.New(apperr.KindValidation, "Password must be at most 72 bytes")
	ErrInvalidEmail       = apperr.New(apperr.KindValidation, "Invalid email address")
	ErrInvalidDateOfBirth = apperr.New(apperr.KindValidation, "Invalid date of birth")
	ErrUserAlreadyExists  = apperr.New(apperr.KindConflict, "User already exists with this email")
	ErrSendOTPFailed      = apperr.New(apperr.KindDependency, "Failed to send OTP")
	ErrEmailAndOTPMissing = apperr.New(apperr.KindValidation, "Email and OTP are required")
	ErrSignupUserNotFound = apperr.New(apperr.KindValidation, "User not found")
)

// Ошибки входа.
var (
	ErrCredentialsMissing = apperr.New(apperr.KindValidation, "Email and password are required")
	ErrInvalidCredentials = apperr.New(apperr.KindValidation, "Invalid credentials")
)

// Ошибки токенов и доступа.
var (
	ErrMissingToken      = apperr.New(apperr.KindUnauthorized, "Access token required")
	ErrInvalidToken      = apperr.New(apperr.KindForbidden, "Invalid or expired token")
	ErrExpiredToken      = apperr.New(apperr.KindForbidden, "Invalid or expired token")
	ErrTokenUserNotFound = apperr.New(apperr.KindUnauthorized, "Invalid token")
	ErrProfileNotFound   = apperr.New(apperr.KindNotFound, "User not found")
)
