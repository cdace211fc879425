package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the account document owned by the auth service. This service only reads it.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username   string             `bson:"username" json:"username"`
	Email      string             `bson:"email" json:"email"`
	FullName   string             `bson:"full_name" json:"fullName"`
	Avatar     string             `bson:"avatar" json:"avatar"`
	CoverImage string             `bson:"cover_image,omitempty" json:"coverImage,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

// PublicUser is the minimal profile joined into lists and feeds.
type PublicUser struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Username string             `bson:"username" json:"username"`
	FullName string             `bson:"full_name" json:"fullName"`
	Avatar   string             `bson:"avatar" json:"avatar"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}
}
