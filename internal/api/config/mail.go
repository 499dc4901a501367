package config

import (
	"errors"
	"fmt"
	"time"
)

// Драйверы отправки писем.
const (
	MailDriverSMTP = "smtp"
	MailDriverLog  = "log"
)

// Ошибки настроек почты.
var (
	ErrUnknownMailDriver   = errors.New("unknown mail driver")
	ErrLogMailInProduction = errors.New("log mail driver is not allowed in production")
)

// MailConfig представляет настройки отправки писем.
type MailConfig struct {
	Driver   string        `env:"MAIL_DRIVER" env-default:"smtp"`
	Host     string        `env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	Port     int           `env:"SMTP_PORT" env-default:"587"`
	Username string        `env:"EMAIL_USER"`
	Password string        `env:"EMAIL_PASS"`
	From     string        `env:"EMAIL_FROM"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" env-default:"15s"`
	AppName  string        `env:"MAIL_APP_NAME" env-default:"HD Notes"`
}

// Validate проверяет драйвер: log пишет коды в журнал и в production запрещен.
func (c *MailConfig) Validate(production bool) error {
	switch c.Driver {
	case MailDriverSMTP:
		return nil
	case MailDriverLog:
		if production {
			return ErrLogMailInProduction
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMailDriver, c.Driver)
	}
}
