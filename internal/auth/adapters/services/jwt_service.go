package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"hdnotes/internal/auth/domain/services"
	svc "hdnotes/internal/auth/ports/services"
	"hdnotes/pkg/logger"
)

const (
	methodIssue  = "Issue"
	methodVerify = "Verify"

	msgIssuingToken    = "issuing access token"
	msgTokenIssued     = "token issued successfully"
	msgVerifyingToken  = "verifying token"
	msgTokenVerified   = "token verified successfully"
	msgTokenExpired    = "token has expired"
	msgTokenRejected   = "token rejected"
	msgEmptyUserClaim  = "user_id claim is empty"
	msgEmptySecretKey  = "empty secret key provided"
	errSigningToken    = "error signing token" //nolint:gosec
	errCtxIssuingToken = "issuing token"
	errCtxVerifyToken  = "verifying token"
)

// Ошибки сервиса токенов.
var (
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")
	ErrEmptySecret      = errors.New("token signing secret is empty")
)

// Claims - полезная нагрузка токена доступа.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует TokenService на HS256.
type ServiceJWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWT создает сервис токенов. Нулевой ttl заменяется на семь дней.
func NewJWT(secretKey string, ttl time.Duration, now func() time.Time) svc.TokenService {
	if ttl <= 0 {
		ttl = services.DefaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &ServiceJWT{secret: []byte(secretKey), ttl: ttl, now: now}
}

// Issue подписывает токен с user_id и сроком действия ttl.
func (s *ServiceJWT) Issue(ctx context.Context, userID string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssue),
		zap.String("userID", userID),
	)
	log.Debug(ctx, msgIssuingToken)

	if len(s.secret) == 0 {
		log.Error(ctx, msgEmptySecretKey)
		return "", time.Time{}, fmt.Errorf("%s: %w", errCtxIssuingToken, ErrEmptySecret)
	}

	now := s.now()
	issuedAt := jwt.NewNumericDate(now)
	expiresAt := jwt.NewNumericDate(ceilSecond(now.Add(s.ttl)))

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt.Time))
	return signed, expiresAt.Time, nil
}

// Verify проверяет подпись и срок действия токена и возвращает user_id.
func (s *ServiceJWT) Verify(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerify))
	log.Debug(ctx, msgVerifyingToken)

	if len(s.secret) == 0 {
		log.Error(ctx, msgEmptySecretKey)
		return "", fmt.Errorf("%s: %w: %w", errCtxVerifyToken, services.ErrInvalidToken, ErrEmptySecret)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return "", fmt.Errorf("%s: %w", errCtxVerifyToken, services.ErrExpiredToken)
		}
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxVerifyToken, services.ErrInvalidToken, err)
	}

	if !token.Valid {
		log.Debug(ctx, msgTokenRejected)
		return "", fmt.Errorf("%s: %w", errCtxVerifyToken, services.ErrInvalidToken)
	}

	if claims.UserID == "" {
		log.Debug(ctx, msgEmptyUserClaim)
		return "", fmt.Errorf("%s: %w", errCtxVerifyToken, services.ErrInvalidToken)
	}

	log.Debug(ctx, msgTokenVerified, zap.String("userID", claims.UserID))
	return claims.UserID, nil
}

// ceilSecond округляет момент вверх до целой секунды: exp в токене хранится в секундах
// и не должен наступать раньше now+ttl.
func ceilSecond(t time.Time) time.Time {
	if truncated := t.Truncate(time.Second); !truncated.Equal(t) {
		return truncated.Add(time.Second)
	}
	return t
}
