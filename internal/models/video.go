package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video metadata. The media itself lives on the hosting service behind VideoFile.
type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	VideoFile   string             `bson:"video_file" json:"videoFile"`
	Duration    float64            `bson:"duration" json:"duration"` // seconds
	Views       int64              `bson:"views" json:"views"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	IsPublished bool               `bson:"is_published" json:"isPublished"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// VideoSummary is the joined form of a video inside history and watch-later views.
type VideoSummary struct {
	ID          primitive.ObjectID `json:"_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Thumbnail   string             `json:"thumbnail"`
	Duration    float64            `json:"duration"`
	Views       int64              `json:"views"`
	Owner       primitive.ObjectID `json:"owner"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func (v *Video) Summary() VideoSummary {
	return VideoSummary{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		Owner:       v.Owner,
		CreatedAt:   v.CreatedAt,
	}
}
