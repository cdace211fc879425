package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Tweet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Content   string             `bson:"content" json:"content"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Comment is read only to count comments per entity.
type Comment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Content    string             `bson:"content" json:"content"`
	Entity     primitive.ObjectID `bson:"entity" json:"entity"`
	EntityKind EntityKind         `bson:"entity_kind" json:"entityType"`
	Owner      primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}

// TweetView is a tweet joined with its author and engagement counts for one viewer.
type TweetView struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	Content       string             `bson:"content" json:"content"`
	Owner         PublicUser         `bson:"owner" json:"owner"`
	LikesCount    int64              `bson:"likes_count" json:"likesCount"`
	CommentsCount int64              `bson:"comments_count" json:"commentsCount"`
	IsLiked       bool               `bson:"is_liked" json:"isLiked"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}
