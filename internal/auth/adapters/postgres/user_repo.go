// Package postgres реализует хранение пользователей в PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"hdnotes/internal/auth/domain/entities"
	"hdnotes/internal/auth/ports/repositories"
	"hdnotes/pkg/logger"
)

const uniqueViolationCode = "23505"

const (
	userColumns = `id, name, email, password_hash, date_of_birth, google_id,
        is_verified, otp_code, otp_expires_at, created_at, updated_at`
	profileColumns = `id, name, email, date_of_birth, google_id, is_verified, created_at, updated_at`
)

// PgxPoolInterface - методы пула, которые использует репозиторий.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

// UserRepository реализует repositories.UserRepository для Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает репозиторий пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

type userRow struct {
	ID           string
	Name         string
	Email        string
	PasswordHash *string
	DateOfBirth  *time.Time
	GoogleID     *string
	IsVerified   bool
	OTPCode      *string
	OTPExpiresAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *userRow) fullDest() []any {
	return []any{
		&r.ID, &r.Name, &r.Email, &r.PasswordHash, &r.DateOfBirth, &r.GoogleID,
		&r.IsVerified, &r.OTPCode, &r.OTPExpiresAt, &r.CreatedAt, &r.UpdatedAt,
	}
}

func (r *userRow) profileDest() []any {
	return []any{
		&r.ID, &r.Name, &r.Email, &r.DateOfBirth, &r.GoogleID,
		&r.IsVerified, &r.CreatedAt, &r.UpdatedAt,
	}
}

func (r *userRow) toEntity() *entities.User {
	user := &entities.User{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		IsVerified: r.IsVerified,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}

	if r.GoogleID != nil {
		user.Account = entities.FederatedAccount{ProviderID: *r.GoogleID, DateOfBirth: r.DateOfBirth}
	} else {
		acc := entities.LocalAccount{}
		if r.PasswordHash != nil {
			acc.PasswordHash = *r.PasswordHash
		}
		if r.DateOfBirth != nil {
			acc.DateOfBirth = *r.DateOfBirth
		}
		user.Account = acc
	}

	if r.OTPCode != nil && r.OTPExpiresAt != nil {
		user.PendingOTP = &entities.OTP{Code: *r.OTPCode, ExpiresAt: *r.OTPExpiresAt}
	}
	return user
}

// accountArgs раскладывает учетную запись по колонкам password_hash, date_of_birth, google_id.
func accountArgs(acc entities.Account) (*string, *time.Time, *string) {
	switch a := acc.(type) {
	case entities.LocalAccount:
		hash := a.PasswordHash
		dob := a.DateOfBirth
		return &hash, &dob, nil
	case entities.FederatedAccount:
		id := a.ProviderID
		return nil, a.DateOfBirth, &id
	default:
		return nil, nil, nil
	}
}

func otpArgs(otp *entities.OTP) (*string, *time.Time) {
	if otp == nil {
		return nil, nil
	}
	code := otp.Code
	expiresAt := otp.ExpiresAt
	return &code, &expiresAt
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	query := `SELECT ` + userColumns + `
        FROM users
        WHERE email = $1`

	var row userRow
	if err := r.pool.QueryRow(ctx, query, email).Scan(row.fullDest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return row.toEntity(), nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `SELECT ` + userColumns + `
        FROM users
        WHERE id = $1`

	var row userRow
	if err := r.pool.QueryRow(ctx, query, id).Scan(row.fullDest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return row.toEntity(), nil
}

// FindProfileByID находит пользователя по ID без хэша пароля и OTP.
func (r *UserRepository) FindProfileByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindProfileByID"))

	query := `SELECT ` + profileColumns + `
        FROM users
        WHERE id = $1`

	var row userRow
	if err := r.pool.QueryRow(ctx, query, id).Scan(row.profileDest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user profile", zap.Error(err))
		return nil, fmt.Errorf("error querying user profile: %w", err)
	}

	return row.toEntity(), nil
}

// Create вставляет нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (name, email, password_hash, date_of_birth, google_id, is_verified, otp_code, otp_expires_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + userColumns

	passwordHash, dob, googleID := accountArgs(user.Account)
	otpCode, otpExpiresAt := otpArgs(user.PendingOTP)

	var row userRow
	err := r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		passwordHash,
		dob,
		googleID,
		user.IsVerified,
		otpCode,
		otpExpiresAt,
	).Scan(row.fullDest()...)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "user already exists", zap.String("email", user.Email))
			return nil, entities.ErrUserAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return row.toEntity(), nil
}

// Save перезаписывает существующего пользователя по ID.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Save"))

	query := `
        UPDATE users
        SET name = $2, email = $3, password_hash = $4, date_of_birth = $5, google_id = $6,
            is_verified = $7, otp_code = $8, otp_expires_at = $9, updated_at = now()
        WHERE id = $1
        RETURNING ` + userColumns

	passwordHash, dob, googleID := accountArgs(user.Account)
	otpCode, otpExpiresAt := otpArgs(user.PendingOTP)

	var row userRow
	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		passwordHash,
		dob,
		googleID,
		user.IsVerified,
		otpCode,
		otpExpiresAt,
	).Scan(row.fullDest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found for update", zap.String("id", user.ID))
			return nil, entities.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			log.Debug(ctx, "email already taken", zap.String("email", user.Email))
			return nil, entities.ErrUserAlreadyExists
		}
		log.Error(ctx, "error saving user", zap.Error(err))
		return nil, fmt.Errorf("error saving user: %w", err)
	}

	return row.toEntity(), nil
}
