package config

import (
	"time"

	"hdnotes/pkg/db/redis"
)

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host     string        `env:"REDIS_HOST" env-default:"localhost"`
	Port     int           `env:"REDIS_PORT" env-default:"6379"`
	Password string        `env:"REDIS_PASSWORD" env-default:""`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	PoolSize int           `env:"REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT" env-default:"3s"`
}

// GetClientConfig возвращает настройки клиента pkg/db/redis.
func (c *RedisConfig) GetClientConfig() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return c.GetClientConfig().Address()
}

// Лимиты запросов по умолчанию.
const (
	DefaultProductionRateLimit  = 100
	DefaultDevelopmentRateLimit = 1000
)

// RateLimitConfig представляет настройки ограничения частоты запросов.
type RateLimitConfig struct {
	Enabled bool          `env:"RATE_LIMIT_ENABLED" env-default:"true"`
	Window  time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"15m"`
	Max     int           `env:"RATE_LIMIT_MAX" env-default:"0"`
}

// GetMax возвращает лимит на окно; 0 означает значение по окружению.
func (c *RateLimitConfig) GetMax(production bool) int {
	if c.Max > 0 {
		return c.Max
	}
	if production {
		return DefaultProductionRateLimit
	}
	return DefaultDevelopmentRateLimit
}
