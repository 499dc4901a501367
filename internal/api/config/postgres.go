package config

import (
	"time"

	"hdnotes/pkg/db/postgres"
)

// PostgresConfig представляет конфигурацию подключения к хранилищу.
type PostgresConfig struct {
	URL            string        `env:"DATABASE_URL" env-required:"true"`
	MinConn        int           `env:"POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn        int           `env:"POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsDir  string        `env:"POSTGRES_MIGRATIONS_DIR" env-default:"migrations/hdnotes"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
}

// GetOptions возвращает параметры пула соединений.
func (c *PostgresConfig) GetOptions() postgres.Options {
	return postgres.Options{
		DSN:            c.URL,
		MinConn:        c.MinConn,
		MaxConn:        c.MaxConn,
		ConnectTimeout: c.ConnectTimeout,
	}
}
