package config

import "hdnotes/pkg/logger"

// LoggingConfig представляет конфигурацию логирования.
type LoggingConfig struct {
	Level string `env:"LOGGER_LEVEL" env-default:"info"`
	Mode  string `env:"LOGGER_MODE"`
}

// GetEnvironment возвращает режим логгера; без LOGGER_MODE используется окружение приложения.
func (c *LoggingConfig) GetEnvironment(app AppConfig) logger.Environment {
	if c.Mode == "" {
		return app.GetEnvironment()
	}
	return logger.ParseEnvironment(c.Mode)
}
