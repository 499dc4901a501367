package mail

import (
	"context"

	"go.uber.org/zap"

	"hdnotes/pkg/logger"
)

const msgVerificationCodeLogged = "verification email not sent, mail driver is log"

// LogSender пишет код подтверждения в лог вместо отправки. Только для разработки.
type LogSender struct{}

// NewLogSender создает LogSender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// SendVerificationEmail логирует получателя и код.
func (s *LogSender) SendVerificationEmail(ctx context.Context, recipient, code, name string) error {
	logger.Log(ctx).Warn(ctx, msgVerificationCodeLogged,
		zap.String("recipient", recipient),
		zap.String("name", name),
		zap.String("code", code))
	return nil
}
