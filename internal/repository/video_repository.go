package repository

import (
	"context"
	"fmt"

	"github.com/Dias221467/streamify/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type VideoRepository struct {
	collection *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{collection: db.Collection("videos")}
}

func (r *VideoRepository) GetVideoByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error) {
	var video models.Video
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&video); err != nil {
		return nil, translate(err)
	}
	return &video, nil
}

// GetVideosByIDs fetches the videos that still exist among ids, in no particular order.
func (r *VideoRepository) GetVideosByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Video, error) {
	if len(ids) == 0 {
		return []models.Video{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch videos by IDs: %w", err)
	}
	defer cursor.Close(ctx)

	videos := []models.Video{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, fmt.Errorf("failed to decode videos: %w", err)
	}
	return videos, nil
}
