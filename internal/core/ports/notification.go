package ports

import (
	"context"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

// Mailer delivers a rendered email.
type Mailer interface {
	Send(ctx context.Context, email domain.Email) error
}

// Notifier relays an application notification to the employer.
type Notifier interface {
	Notify(ctx context.Context, n domain.ApplicationNotification) error
}

// NotificationQueue accepts notifications for asynchronous delivery.
// Enqueue never blocks; it reports false when the notification was dropped.
type NotificationQueue interface {
	Enqueue(n domain.ApplicationNotification) bool
}

// NotificationDedup guards against mailing the same application twice.
type NotificationDedup interface {
	// MarkIfNew records key and reports whether it was not seen before.
	MarkIfNew(ctx context.Context, key string) (bool, error)
}
