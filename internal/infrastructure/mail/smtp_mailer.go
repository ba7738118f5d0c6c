package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/romero-panificados/inventario-api/internal/application/ports"
	"github.com/romero-panificados/inventario-api/pkg/config"
	"github.com/romero-panificados/inventario-api/pkg/logger"
)

var (
	_ ports.Mailer = (*SMTPMailer)(nil)
	_ ports.Mailer = (*LogMailer)(nil)
)

// NewMailer usa SMTP si hay SMTP_HOST; si no, solo registra los correos en el log.
func NewMailer(cfg config.SMTPConfig, log *logger.Logger) ports.Mailer {
	if !cfg.Enabled() {
		return &LogMailer{log: log.Component("mail")}
	}
	return NewSMTPMailer(cfg)
}

// SMTPMailer envía con gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer construye el mailer SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send arma el mensaje y lo envía. gomail no acepta contexto: el envío corre en una
// goroutine y Send retorna al vencer ctx aunque el dial siga en curso.
func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogMailer registra el correo en lugar de enviarlo (entornos sin SMTP).
type LogMailer struct {
	log *logger.Logger
}

func (m *LogMailer) Send(_ context.Context, to []string, subject, body string) error {
	m.log.Info().Strs("to", to).Str("subject", subject).Int("body_len", len(body)).Msg("correo no enviado: SMTP no configurado")
	return nil
}
