package cron

import (
	"context"

	"github.com/Dias221467/streamify/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartReminderCron schedules the watch-later reminder sweep. An empty
// schedule disables it and returns a nil scheduler.
func StartReminderCron(schedule string, dispatcher *jobs.ReminderDispatcher) (*cron.Cron, error) {
	if schedule == "" {
		logrus.Info("Reminder cron disabled")
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := dispatcher.RunScan(context.Background()); err != nil {
			logrus.WithError(err).Error("Reminder scan failed")
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logrus.WithField("schedule", schedule).Info("Reminder cron started")
	return c, nil
}
