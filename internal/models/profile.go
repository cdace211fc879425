package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileView is a user's public profile with relationship and content counts,
// seen from one viewer.
type ProfileView struct {
	ID                primitive.ObjectID `bson:"_id" json:"_id"`
	Username          string             `bson:"username" json:"username"`
	FullName          string             `bson:"full_name" json:"fullName"`
	Avatar            string             `bson:"avatar" json:"avatar"`
	CoverImage        string             `bson:"cover_image" json:"coverImage"`
	FollowersCount    int64              `bson:"followers_count" json:"followersCount"`
	FollowingCount    int64              `bson:"following_count" json:"followingCount"`
	SubscribersCount  int64              `bson:"subscribers_count" json:"subscribersCount"`
	SubscribedToCount int64              `bson:"subscribed_to_count" json:"subscribedToCount"`
	VideosCount       int64              `bson:"videos_count" json:"videosCount"`
	TweetsCount       int64              `bson:"tweets_count" json:"tweetsCount"`
	IsFollowing       bool               `bson:"is_following" json:"isFollowing"`
	IsSubscribed      bool               `bson:"is_subscribed" json:"isSubscribed"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
}
