// Package mail доставляет письма с кодами подтверждения.
package mail

import (
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"hdnotes/pkg/logger"
)

const (
	methodSendVerificationEmail = "SendVerificationEmail"

	msgSendingEmail = "sending verification email"
	msgEmailSent    = "verification email sent"
	msgSendFailed   = "failed to send verification email"

	errCtxBuildMessage = "building verification message"
	errCtxSendMessage  = "sending verification message"
	errCtxNewClient    = "creating smtp client"
)

// ErrMissingSMTPCredentials возвращается, если не заданы логин или пароль SMTP.
var ErrMissingSMTPCredentials = errors.New("smtp username and password are required")

const (
	subjectSuffix  = " - Email Verification OTP"
	defaultPort    = 587
	defaultTimeout = 15 * time.Second
	defaultAppName = "HD Notes"
	defaultOTPTTL  = 10 * time.Minute
)

var htmlBody = htmltemplate.Must(htmltemplate.New("verification.html").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #333;">Email Verification</h2>
<p>Hello {{.Name}}!</p>
<p>Your OTP for email verification is:</p>
<div style="background-color: #f4f4f4; padding: 20px; text-align: center; margin: 20px 0;">
<h1 style="color: #007bff; font-size: 32px; margin: 0;">
{{.Code}}
</h1>
</div>
<p>This OTP will expire in {{.ExpiresInMinutes}} minutes.</p>
<p>If you didn't request this, please ignore this email.</p>
</div>
`))

var textBody = texttemplate.Must(texttemplate.New("verification.txt").Parse(`Hello {{.Name}}!

Your OTP for email verification is:

{{.Code}}

This OTP will expire in {{.ExpiresInMinutes}} minutes.
If you didn't request this, please ignore this email.
`))

type templateData struct {
	Name             string
	Code             string
	ExpiresInMinutes int
}

// Dialer отправляет готовые сообщения. *gomail.Client реализует его.
type Dialer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// SMTPConfig задает параметры SMTP.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppName  string
	Timeout  time.Duration
	OTPTTL   time.Duration
}

// SMTPSender отправляет письма через SMTP.
type SMTPSender struct {
	dialer  Dialer
	from    string
	appName string
	otpTTL  time.Duration
}

// NewSMTPSender создает отправителя с клиентом go-mail.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("%s: %w", errCtxNewClient, ErrMissingSMTPCredentials)
	}

	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxNewClient, err)
	}

	return NewSMTPSenderWithDialer(client, cfg), nil
}

// NewSMTPSenderWithDialer создает отправителя с заданным транспортом.
func NewSMTPSenderWithDialer(dialer Dialer, cfg SMTPConfig) *SMTPSender {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	if cfg.AppName == "" {
		cfg.AppName = defaultAppName
	}
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = defaultOTPTTL
	}
	return &SMTPSender{
		dialer:  dialer,
		from:    from,
		appName: cfg.AppName,
		otpTTL:  cfg.OTPTTL,
	}
}

// SendVerificationEmail отправляет код подтверждения на recipient. Повторных попыток нет.
func (s *SMTPSender) SendVerificationEmail(ctx context.Context, recipient, code, name string) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodSendVerificationEmail),
		zap.String("recipient", recipient),
	)
	log.Debug(ctx, msgSendingEmail)

	msg, err := s.buildMessage(recipient, code, name)
	if err != nil {
		log.Error(ctx, msgSendFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxBuildMessage, err)
	}

	if err := s.dialer.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error(ctx, msgSendFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSendMessage, err)
	}

	log.Info(ctx, msgEmailSent)
	return nil
}

func (s *SMTPSender) buildMessage(recipient, code, name string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, err
	}
	if err := msg.To(recipient); err != nil {
		return nil, err
	}
	msg.Subject(s.appName + subjectSuffix)
	msg.SetDate()

	data := templateData{
		Name:             name,
		Code:             code,
		ExpiresInMinutes: int(s.otpTTL / time.Minute),
	}
	if err := msg.SetBodyTextTemplate(textBody, data); err != nil {
		return nil, err
	}
	if err := msg.AddAlternativeHTMLTemplate(htmlBody, data); err != nil {
		return nil, err
	}
	return msg, nil
}
