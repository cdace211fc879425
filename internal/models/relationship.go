package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow is a social edge: Follower follows Followee.
type Follow struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Follower  primitive.ObjectID `bson:"follower" json:"follower"`
	Followee  primitive.ObjectID `bson:"followee" json:"followee"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Subscription is a channel edge: Subscriber subscribes to Channel.
type Subscription struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Subscriber primitive.ObjectID `bson:"subscriber" json:"subscriber"`
	Channel    primitive.ObjectID `bson:"channel" json:"channel"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}

// TweetLike is an engagement edge from a user to a tweet.
type TweetLike struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	LikedBy   primitive.ObjectID `bson:"liked_by" json:"likedBy"`
	Tweet     primitive.ObjectID `bson:"tweet" json:"tweet"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Direction selects which end of an edge set a listing walks.
type Direction int

const (
	// Inbound lists edges pointing at the subject (followers, subscribers).
	Inbound Direction = iota
	// Outbound lists edges leaving the subject (following, subscribed channels).
	Outbound
)

// Connection is one edge joined with the other party's public profile.
type Connection struct {
	User  PublicUser `bson:"user" json:"user"`
	Since time.Time  `bson:"since" json:"since"`
}

// ToggleResult reports the edge state after a toggle and the fresh inbound count.
type ToggleResult struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}
