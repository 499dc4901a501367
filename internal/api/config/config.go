// Package config содержит конфигурацию HD Notes сервиса.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hdnotes/pkg/config"
	"hdnotes/pkg/logger"
)

const (
	serviceName = "hdnotes"

	LogConfigSummary = "effective configuration"

	errCtxValidating = "validating configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Postgres  PostgresConfig
	JWT       JWTConfig
	OTP       OTPConfig
	Mail      MailConfig
	CORS      CORSConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Google    GoogleConfig
	Logging   LoggingConfig
	Shutdown  ShutdownConfig
}

// Load загружает конфигурацию из .env файлов (если есть) и переменных окружения.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	cfg, err := config.Load[Config](ctx, serviceName, envFiles...)
	if err != nil {
		return nil, err
	}

	if err := cfg.Mail.Validate(cfg.App.IsProduction()); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigSummary,
		zap.String("environment", string(cfg.App.GetEnvironment())),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("mail_driver", cfg.Mail.Driver),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.Strings("cors_origins", cfg.CORS.GetOrigins()),
		zap.Duration("token_ttl", cfg.JWT.TokenTTL),
		zap.Duration("otp_ttl", cfg.OTP.TTL),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
