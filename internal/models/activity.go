package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityType enumerates the user actions the activity log accepts.
type ActivityType string

const (
	ActivityVideoUpload      ActivityType = "video_upload"
	ActivityVideoWatch       ActivityType = "video_watch"
	ActivityVideoLike        ActivityType = "video_like"
	ActivityVideoUnlike      ActivityType = "video_unlike"
	ActivityCommentCreate    ActivityType = "comment_create"
	ActivityCommentLike      ActivityType = "comment_like"
	ActivityTweetCreate      ActivityType = "tweet_create"
	ActivityTweetLike        ActivityType = "tweet_like"
	ActivityTweetUnlike      ActivityType = "tweet_unlike"
	ActivitySubscribe        ActivityType = "subscribe"
	ActivityUnsubscribe      ActivityType = "unsubscribe"
	ActivityFollow           ActivityType = "follow"
	ActivityUnfollow         ActivityType = "unfollow"
	ActivityPlaylistCreate   ActivityType = "playlist_create"
	ActivityWatchLaterAdd    ActivityType = "watch_later_add"
	ActivityWatchLaterRemove ActivityType = "watch_later_remove"
)

// ActivityTypes lists every accepted kind, in display order.
var ActivityTypes = []ActivityType{
	ActivityVideoUpload, ActivityVideoWatch, ActivityVideoLike, ActivityVideoUnlike,
	ActivityCommentCreate, ActivityCommentLike,
	ActivityTweetCreate, ActivityTweetLike, ActivityTweetUnlike,
	ActivitySubscribe, ActivityUnsubscribe, ActivityFollow, ActivityUnfollow,
	ActivityPlaylistCreate, ActivityWatchLaterAdd, ActivityWatchLaterRemove,
}

func (t ActivityType) Valid() bool {
	for _, known := range ActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// EntityKind tags what an EntityRef points at.
type EntityKind string

const (
	EntityVideo    EntityKind = "Video"
	EntityComment  EntityKind = "Comment"
	EntityTweet    EntityKind = "Tweet"
	EntityUser     EntityKind = "User"
	EntityPlaylist EntityKind = "Playlist"
)

var EntityKinds = []EntityKind{EntityVideo, EntityComment, EntityTweet, EntityUser, EntityPlaylist}

func (k EntityKind) Valid() bool {
	for _, known := range EntityKinds {
		if k == known {
			return true
		}
	}
	return false
}

// EntityRef is a typed reference to a document in one of the entity collections.
type EntityRef struct {
	Kind EntityKind         `bson:"kind" json:"kind"`
	ID   primitive.ObjectID `bson:"id" json:"id"`
}

func NewEntityRef(kind EntityKind, id primitive.ObjectID) *EntityRef {
	return &EntityRef{Kind: kind, ID: id}
}

// Activity is an immutable activity log record. Records expire 90 days after CreatedAt.
type Activity struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"_id"`
	User      primitive.ObjectID     `bson:"user" json:"user"`
	Type      ActivityType           `bson:"type" json:"type"`
	Entity    *EntityRef             `bson:"entity,omitempty" json:"entity,omitempty"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	SessionID string                 `bson:"session_id,omitempty" json:"sessionId,omitempty"`
	CreatedAt time.Time              `bson:"created_at" json:"createdAt"`
}

const ActivityRetention = 90 * 24 * time.Hour

// ActivityFilter narrows an activity query. Zero values mean "no constraint".
type ActivityFilter struct {
	User      primitive.ObjectID
	Type      ActivityType
	StartDate time.Time
	EndDate   time.Time
}

// EntitySummary is the display form of a resolved EntityRef.
type EntitySummary struct {
	Kind  EntityKind         `json:"kind"`
	ID    primitive.ObjectID `json:"_id"`
	Title string             `json:"title"`
}

// ActivityView is an activity enriched with its resolved entity.
type ActivityView struct {
	Activity
	EntitySummary *EntitySummary `json:"entitySummary,omitempty"`
}

type ActivityTypeCount struct {
	Type  ActivityType `bson:"_id" json:"type"`
	Count int64        `bson:"count" json:"count"`
	Last  time.Time    `bson:"last" json:"lastActivity"`
}

type ActivityDayCount struct {
	Day   string `bson:"_id" json:"date"` // YYYY-MM-DD, UTC
	Count int64  `bson:"count" json:"count"`
}

// ActivitySummary feeds the dashboard charts.
type ActivitySummary struct {
	WindowDays int                 `json:"windowDays"`
	Total      int64               `json:"total"`
	ByType     []ActivityTypeCount `json:"byType"`
	ByDay      []ActivityDayCount  `json:"byDay"`
}
