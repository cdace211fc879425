package jobs

import (
	"context"
	"time"

	"github.com/Dias221467/streamify/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ReminderSource turns due watch-later reminders into notifications.
type ReminderSource interface {
	DispatchDueReminders(ctx context.Context, batch int) (int, error)
}

const (
	defaultReminderBatch = 100
	maxReminderPasses    = 10
)

type ReminderDispatcher struct {
	Source    ReminderSource
	BatchSize int
	Timeout   time.Duration
}

// NewReminderDispatcher creates a dispatcher that sweeps in batches of 100 lists.
func NewReminderDispatcher(source ReminderSource) *ReminderDispatcher {
	return &ReminderDispatcher{
		Source:    source,
		BatchSize: defaultReminderBatch,
		Timeout:   time.Minute,
	}
}

// RunScan dispatches every reminder due now. A pass that sends nothing ends
// the scan, so a backlog larger than one batch is drained within one tick.
func (d *ReminderDispatcher) RunScan(ctx context.Context) (int, error) {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}
	batch := d.BatchSize
	if batch <= 0 {
		batch = defaultReminderBatch
	}

	total := 0
	for pass := 0; pass < maxReminderPasses; pass++ {
		sent, err := d.Source.DispatchDueReminders(ctx, batch)
		total += sent
		if err != nil {
			return total, err
		}
		if sent == 0 {
			break
		}
	}

	if total > 0 {
		logger.Log.WithFields(logrus.Fields{"dispatched": total}).Info("Watch later reminder scan completed")
	}
	return total, nil
}
