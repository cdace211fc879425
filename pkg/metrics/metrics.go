// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamify_notifications_delivered_total",
		Help: "Notifications persisted by the outbox",
	})

	// NotificationsDropped is labelled by reason: store_error or queue_full.
	NotificationsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamify_notifications_dropped_total",
		Help: "Notifications the outbox failed to persist",
	}, []string{"reason"})

	NotificationQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "streamify_notification_queue_depth",
		Help: "Notifications waiting in the outbox queue",
	})

	ActivitiesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamify_activities_recorded_total",
		Help: "Activity records written, by type",
	}, []string{"type"})

	ActivitiesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamify_activities_dropped_total",
		Help: "Activity records lost to store errors",
	})

	// ListSaveConflicts counts lost compare-and-swap saves, by list (history, watch_later).
	ListSaveConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamify_list_save_conflicts_total",
		Help: "Concurrent list saves that had to be retried",
	}, []string{"list"})

	RemindersDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamify_watch_later_reminders_total",
		Help: "Watch-later reminders turned into notifications",
	})
)
