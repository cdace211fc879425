package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const WatchLaterCap = 1000

// WatchLater is a user's saved-for-later list, newest first, one entry per video.
type WatchLater struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	Videos    []WatchLaterEntry  `bson:"videos" json:"videos"`
	Version   int64              `bson:"version" json:"-"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type WatchLaterEntry struct {
	Video    primitive.ObjectID `bson:"video" json:"video"`
	AddedAt  time.Time          `bson:"added_at" json:"addedAt"`
	RemindAt *time.Time         `bson:"remind_at,omitempty" json:"remindAt,omitempty"`
}

type WatchLaterItemView struct {
	Video    VideoSummary `json:"video"`
	AddedAt  time.Time    `json:"addedAt"`
	RemindAt *time.Time   `json:"remindAt,omitempty"`
}

// WatchLaterQuery holds the read-time search, window and sort options.
type WatchLaterQuery struct {
	Search string
	Window string // today, week, month
	Sort   string // recent, oldest, title, duration, views
}

const (
	WindowToday = "today"
	WindowWeek  = "week"
	WindowMonth = "month"

	SortRecent   = "recent"
	SortOldest   = "oldest"
	SortTitle    = "title"
	SortDuration = "duration"
	SortViews    = "views"
)
