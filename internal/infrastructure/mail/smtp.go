// Package mail delivers outgoing email over SMTP.
package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

const dialTimeout = 15 * time.Second

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// TLS is one of mandatory, opportunistic or none.
	TLS string
}

// SMTPMailer sends each message on its own SMTP connection.
type SMTPMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Configured reports whether a server is set.
func (m *SMTPMailer) Configured() bool {
	return m.cfg.Host != ""
}

func (m *SMTPMailer) Send(ctx context.Context, email domain.Email) error {
	if !m.Configured() {
		return domain.ErrMailerNotConfigured
	}

	msg, err := buildMessage(email)
	if err != nil {
		return err
	}
	client, err := gomail.NewClient(m.cfg.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) clientOptions() []gomail.Option {
	opts := []gomail.Option{gomail.WithTimeout(dialTimeout)}
	if m.cfg.Port > 0 {
		opts = append(opts, gomail.WithPort(m.cfg.Port))
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password),
		)
	}

	switch strings.ToLower(m.cfg.TLS) {
	case "none":
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	case "opportunistic":
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	default:
		if m.cfg.Port == 465 {
			opts = append(opts, gomail.WithSSL())
		} else {
			opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
		}
	}
	return opts
}

func buildMessage(email domain.Email) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(email.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", email.From, err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", email.To, err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, email.Body)
	return msg, nil
}

var _ ports.Mailer = (*SMTPMailer)(nil)
