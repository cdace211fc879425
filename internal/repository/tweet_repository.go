package repository

import (
	"context"

	"github.com/Dias221467/streamify/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TweetRepository struct {
	collection *mongo.Collection
}

func NewTweetRepository(db *mongo.Database) *TweetRepository {
	return &TweetRepository{collection: db.Collection("tweets")}
}

func (r *TweetRepository) GetTweetByID(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tweet); err != nil {
		return nil, translate(err)
	}
	return &tweet, nil
}
