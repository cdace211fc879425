package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const HistoryCap = 200

// History is a user's watch history, most recently watched first.
type History struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Videos    []HistoryEntry     `bson:"videos" json:"videos"`
	Version   int64              `bson:"version" json:"-"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type HistoryEntry struct {
	Video             primitive.ObjectID `bson:"video" json:"video"`
	WatchedAt         time.Time          `bson:"watched_at" json:"watchedAt"`
	PlaybackTimestamp float64            `bson:"playback_timestamp" json:"playbackTimestamp"`
	VideoDuration     float64            `bson:"video_duration" json:"videoDuration"`
}

// HistoryItemView is one history entry joined with its video.
type HistoryItemView struct {
	Video             VideoSummary `json:"video"`
	WatchedAt         time.Time    `json:"watchedAt"`
	PlaybackTimestamp float64      `json:"playbackTimestamp"`
	VideoDuration     float64      `json:"videoDuration"`
	Progress          int          `json:"progress"`
}
