package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

// NotifyService turns an application notification into an email. It is the
// core of the relay endpoint and also serves as an in-process Notifier when
// no external relay is configured.
type NotifyService struct {
	mailer ports.Mailer
	from   string
	log    zerolog.Logger
}

func NewNotifyService(mailer ports.Mailer, from string, log zerolog.Logger) *NotifyService {
	return &NotifyService{mailer: mailer, from: from, log: log}
}

// Notify sends one email. There is no retry.
func (s *NotifyService) Notify(ctx context.Context, n domain.ApplicationNotification) error {
	if strings.TrimSpace(n.EmployerEmail) == "" {
		return fmt.Errorf("notify: missing employer email")
	}

	msg := domain.NewApplicationEmail(s.from, n)
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: send email: %w", err)
	}

	s.log.Info().Str("to", n.EmployerEmail).Str("job_title", n.JobTitle).Msg("application email sent")
	return nil
}

var _ ports.Notifier = (*NotifyService)(nil)
