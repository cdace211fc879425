package services

import (
	"testing"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/internal/repository"
	"github.com/Dias221467/streamify/internal/repository/memstore"
)

// The Mongo repositories and the in-memory store must both satisfy the
// service interfaces.
var (
	_ UserStore         = (*repository.UserRepository)(nil)
	_ EdgeStore         = (*repository.RelationRepository)(nil)
	_ ActivityStore     = (*repository.ActivityRepository)(nil)
	_ EntityResolver    = (*repository.EntityRepository)(nil)
	_ NotificationStore = (*repository.NotificationRepository)(nil)
	_ HistoryStore      = (*repository.HistoryRepository)(nil)
	_ WatchLaterStore   = (*repository.WatchLaterRepository)(nil)
	_ VideoStore        = (*repository.VideoRepository)(nil)
	_ TweetStore        = (*repository.TweetRepository)(nil)
	_ ProfileStore      = (*repository.ProfileRepository)(nil)

	_ UserStore         = (*memstore.Users)(nil)
	_ EdgeStore         = (*memstore.Edges)(nil)
	_ ActivityStore     = (*memstore.Activities)(nil)
	_ EntityResolver    = (*memstore.Entities)(nil)
	_ NotificationStore = (*memstore.Notifications)(nil)
	_ HistoryStore      = (*memstore.Histories)(nil)
	_ WatchLaterStore   = (*memstore.WatchLaterLists)(nil)
	_ VideoStore        = (*memstore.Videos)(nil)
	_ TweetStore        = (*memstore.Tweets)(nil)
	_ ProfileStore      = (*memstore.Profiles)(nil)

	_ Recorder          = (*ActivityService)(nil)
	_ Recorder          = NoopRecorder{}
	_ NotificationQueue = (*Outbox)(nil)
	_ Notifier          = (*NotificationService)(nil)
)

type fixture struct {
	db            *memstore.DB
	notifications *NotificationService
	outbox        *Outbox
	activity      *ActivityService
	follows       *RelationshipService
	subscriptions *RelationshipService
	likes         *LikeService
	history       *HistoryService
	watchLater    *WatchLaterService
	profiles      *ProfileService
}

// newFixture wires every service on one in-memory store with a synchronous outbox.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memstore.New()
	f := &fixture{db: db}

	f.notifications = NewNotificationService(db.Notifications())
	f.outbox = NewOutbox(f.notifications, 0, 0)
	f.activity = NewActivityService(db.Activities(), db.Entities())
	f.follows = NewFollowService(db.Follows(), db.Users(), f.outbox, f.activity)
	f.subscriptions = NewSubscriptionService(db.Subscriptions(), db.Users(), f.outbox, f.activity)
	f.likes = NewLikeService(db.TweetLikes(), db.Tweets(), db.Users(), f.outbox, f.activity)
	f.history = NewHistoryService(db.Histories(), db.Videos(), f.activity)
	f.watchLater = NewWatchLaterService(db.WatchLater(), db.Videos(), f.outbox, f.activity)
	f.profiles = NewProfileService(db.Profiles())
	return f
}

func (f *fixture) user(name string) models.User {
	return f.db.AddUser(models.User{Username: name, FullName: name, Email: name + "@example.com"})
}

func (f *fixture) video(title string, duration float64) models.Video {
	return f.db.AddVideo(models.Video{Title: title, Duration: duration, IsPublished: true})
}

func activityTypes(list []models.Activity) []models.ActivityType {
	out := make([]models.ActivityType, len(list))
	for i, a := range list {
		out[i] = a.Type
	}
	return out
}
