package services

import (
	"context"
	"time"

	"github.com/Dias221467/streamify/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The interfaces below are the slices of the repositories each service
// needs. The Mongo repositories satisfy them; tests use memstore.

type UserStore interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// EdgeStore is one directed, unique-per-pair edge set.
type EdgeStore interface {
	Exists(ctx context.Context, from, to primitive.ObjectID) (bool, error)
	Create(ctx context.Context, from, to primitive.ObjectID) error
	Delete(ctx context.Context, from, to primitive.ObjectID) (bool, error)
	CountInbound(ctx context.Context, to primitive.ObjectID) (int64, error)
	List(ctx context.Context, subject primitive.ObjectID, dir models.Direction, page, limit int) ([]models.Connection, int64, error)
}

type ActivityStore interface {
	CreateActivity(ctx context.Context, activity *models.Activity) error
	FindActivities(ctx context.Context, f models.ActivityFilter, page, limit int) ([]models.Activity, int64, error)
	Summarize(ctx context.Context, user primitive.ObjectID, since time.Time) (*models.ActivitySummary, error)
	DeleteActivity(ctx context.Context, user, id primitive.ObjectID) (bool, error)
	DeleteActivities(ctx context.Context, user primitive.ObjectID, typ models.ActivityType) (int64, error)
}

type EntityResolver interface {
	ResolveEntities(ctx context.Context, refs []models.EntityRef) (map[models.EntityRef]models.EntitySummary, error)
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	ListNotifications(ctx context.Context, recipient primitive.ObjectID, f models.NotificationFilter, page, limit int) ([]models.NotificationView, int64, error)
	CountUnread(ctx context.Context, recipient primitive.ObjectID) (int64, error)
	MarkAsRead(ctx context.Context, recipient, id primitive.ObjectID) (bool, error)
	MarkAllAsRead(ctx context.Context, recipient primitive.ObjectID) (int64, error)
	DeleteNotification(ctx context.Context, recipient, id primitive.ObjectID) (bool, error)
	DeleteAllNotifications(ctx context.Context, recipient primitive.ObjectID) (int64, error)
}

type HistoryStore interface {
	GetHistory(ctx context.Context, user primitive.ObjectID) (*models.History, error)
	SaveHistory(ctx context.Context, h *models.History) error
}

type WatchLaterStore interface {
	GetWatchLater(ctx context.Context, owner primitive.ObjectID) (*models.WatchLater, error)
	SaveWatchLater(ctx context.Context, wl *models.WatchLater) error
	FindDueReminders(ctx context.Context, now time.Time, limit int) ([]models.WatchLater, error)
}

type VideoStore interface {
	GetVideoByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error)
	GetVideosByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Video, error)
}

type TweetStore interface {
	GetTweetByID(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error)
}

type ProfileStore interface {
	GetProfile(ctx context.Context, viewer, user primitive.ObjectID) (*models.ProfileView, error)
	ListTweets(ctx context.Context, viewer primitive.ObjectID, owner *primitive.ObjectID, page, limit int) ([]models.TweetView, int64, error)
	GetTweet(ctx context.Context, viewer, id primitive.ObjectID) (*models.TweetView, error)
}
