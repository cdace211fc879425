package services

import (
	"context"
	"sync"
	"time"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/pkg/logger"
	"github.com/Dias221467/streamify/pkg/metrics"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationQueue is how producers emit notifications. Enqueue never
// blocks on the store and never reports delivery failure to the producer.
type NotificationQueue interface {
	Enqueue(recipient, sender primitive.ObjectID, typ models.NotificationType, message string)
}

// Notifier persists one notification.
type Notifier interface {
	Notify(ctx context.Context, recipient, sender primitive.ObjectID, typ models.NotificationType, message string) error
}

type outboxJob struct {
	recipient primitive.ObjectID
	sender    primitive.ObjectID
	typ       models.NotificationType
	message   string
}

const deliveryTimeout = 5 * time.Second

// Outbox delivers enqueued notifications either inline (queue size 0) or
// through a bounded channel drained by worker goroutines. Failures and
// drops are logged and counted.
type Outbox struct {
	notifier Notifier
	ch       chan outboxJob
	workers  int

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewOutbox(notifier Notifier, queueSize, workers int) *Outbox {
	o := &Outbox{notifier: notifier, workers: workers}
	if queueSize > 0 {
		o.ch = make(chan outboxJob, queueSize)
	}
	if o.workers <= 0 {
		o.workers = 1
	}
	return o
}

// Start launches the workers. It is a no-op for a synchronous outbox.
func (o *Outbox) Start() {
	if o.ch == nil {
		return
	}
	for i := 0; i < o.workers; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for job := range o.ch {
				metrics.NotificationQueueDepth.Set(float64(len(o.ch)))
				o.deliver(job)
			}
		}()
	}
	logger.Log.WithField("workers", o.workers).Info("Notification outbox started")
}

// Stop rejects new jobs and waits for the queue to drain or ctx to expire.
func (o *Outbox) Stop(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	if o.ch != nil {
		close(o.ch)
	}
	o.mu.Unlock()

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Outbox) Enqueue(recipient, sender primitive.ObjectID, typ models.NotificationType, message string) {
	job := outboxJob{recipient: recipient, sender: sender, typ: typ, message: message}

	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		o.drop(job, "closed")
		return
	}
	if o.ch == nil {
		o.deliver(job)
		return
	}
	select {
	case o.ch <- job:
		metrics.NotificationQueueDepth.Set(float64(len(o.ch)))
	default:
		o.drop(job, "queue_full")
	}
}

// deliver uses its own context so a finished request cannot cancel the write.
func (o *Outbox) deliver(job outboxJob) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	if err := o.notifier.Notify(ctx, job.recipient, job.sender, job.typ, job.message); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"recipient": job.recipient.Hex(),
			"type":      job.typ,
		}).WithError(err).Warn("Failed to deliver notification")
		metrics.NotificationsDropped.WithLabelValues("store_error").Inc()
		return
	}
	metrics.NotificationsDelivered.Inc()
}

func (o *Outbox) drop(job outboxJob, reason string) {
	logger.Log.WithFields(logrus.Fields{
		"recipient": job.recipient.Hex(),
		"type":      job.typ,
		"reason":    reason,
	}).Warn("Notification dropped")
	metrics.NotificationsDropped.WithLabelValues(reason).Inc()
}
