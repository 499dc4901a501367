package services

import (
	"context"

	"hdnotes/internal/auth/domain/entities"
)

// OTPService выпускает одноразовые коды подтверждения.
type OTPService interface {
	Issue(ctx context.Context) (entities.OTP, error)
}

// MailSender доставляет письмо с кодом подтверждения.
type MailSender interface {
	SendVerificationEmail(ctx context.Context, recipient, code, name string) error
}
