package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationLike      NotificationType = "like"
	NotificationComment   NotificationType = "comment"
	NotificationSubscribe NotificationType = "subscribe"
	NotificationUpload    NotificationType = "upload"
	NotificationFollow    NotificationType = "follow"
	NotificationSystem    NotificationType = "system"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLike, NotificationComment, NotificationSubscribe,
		NotificationUpload, NotificationFollow, NotificationSystem:
		return true
	}
	return false
}

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Recipient primitive.ObjectID `bson:"recipient" json:"recipient"`
	Sender    primitive.ObjectID `bson:"sender" json:"sender"`
	Type      NotificationType   `bson:"type" json:"type"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// NotificationView is a notification joined with its sender's public profile.
type NotificationView struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Recipient primitive.ObjectID `bson:"recipient" json:"recipient"`
	Sender    *PublicUser        `bson:"sender,omitempty" json:"sender"`
	Type      NotificationType   `bson:"type" json:"type"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// NotificationFilter narrows a listing; nil fields are unconstrained.
type NotificationFilter struct {
	Type *NotificationType
	Read *bool
}

// NotificationPage is a page of notifications plus the recipient's total unread count.
type NotificationPage struct {
	Page[NotificationView]
	UnreadCount int64 `json:"unreadCount"`
}
