package config

import "hdnotes/pkg/logger"

// AppConfig описывает окружение запуска.
type AppConfig struct {
	Env string `env:"APP_ENV" env-default:"development"`
}

// GetEnvironment возвращает окружение; все, кроме production, считается development.
func (c *AppConfig) GetEnvironment() logger.Environment {
	return logger.ParseEnvironment(c.Env)
}

// IsProduction сообщает, запущен ли сервис в production.
func (c *AppConfig) IsProduction() bool {
	return c.GetEnvironment() == logger.Production
}
