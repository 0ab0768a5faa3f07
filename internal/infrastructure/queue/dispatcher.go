package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/anurag-po/CODSOFT/internal/api/metrics"
	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 64
	defaultTimeout = 15 * time.Second
	dedupKeyPrefix = "notify:"
)

// Options tunes a Dispatcher. Zero values fall back to defaults.
type Options struct {
	Workers     int
	Buffer      int
	SendTimeout time.Duration
}

// Dispatcher delivers application notifications on a fixed set of workers,
// sharded by application id. Delivery is best-effort: a full worker channel
// drops the notification and a failed send is logged, never retried.
type Dispatcher struct {
	workers  []chan domain.ApplicationNotification
	notifier ports.Notifier
	dedup    ports.NotificationDedup
	timeout  time.Duration
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher. dedup may be nil.
func NewDispatcher(opts Options, notifier ports.Notifier, dedup ports.NotificationDedup, log zerolog.Logger) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Buffer <= 0 {
		opts.Buffer = defaultBuffer
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = defaultTimeout
	}
	d := &Dispatcher{
		workers:  make([]chan domain.ApplicationNotification, opts.Workers),
		notifier: notifier,
		dedup:    dedup,
		timeout:  opts.SendTimeout,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ApplicationNotification, opts.Buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands n to its worker without blocking. It reports false when the
// worker channel is full and the notification was dropped.
func (d *Dispatcher) Enqueue(n domain.ApplicationNotification) bool {
	idx := d.shardIndex(n.ApplicationID)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
		return true
	default:
		metrics.NotificationsTotal.WithLabelValues("dropped").Inc()
		return false
	}
}

// shardIndex maps an application id deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ApplicationNotification) {
	depth := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.deliver(ctx, id, n)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, n domain.ApplicationNotification) {
	log := d.log.With().
		Str("application_id", n.ApplicationID).
		Int("worker_id", workerID).
		Logger()

	if d.dedup != nil && n.ApplicationID != "" {
		fresh, err := d.dedup.MarkIfNew(ctx, dedupKeyPrefix+n.ApplicationID)
		if err != nil {
			// Fail open: a Redis outage must not silence notifications.
			log.Warn().Err(err).Msg("notification dedup check failed")
		} else if !fresh {
			metrics.NotificationsTotal.WithLabelValues("duplicate").Inc()
			log.Debug().Msg("notification already sent, skipping")
			return
		}
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	err := d.notifier.Notify(sendCtx, n)
	result := "sent"
	if err != nil {
		result = "failed"
	}
	metrics.NotificationDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	metrics.NotificationsTotal.WithLabelValues(result).Inc()

	if err != nil {
		log.Error().Err(err).Str("employer_email", n.EmployerEmail).Msg("notification failed")
		return
	}
	log.Info().Str("employer_email", n.EmployerEmail).Msg("notification delivered")
}

var _ ports.NotificationQueue = (*Dispatcher)(nil)
