package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/streamify/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type HistoryRepository struct {
	collection *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{collection: db.Collection("histories")}
}

// GetHistory loads the user's history document. A user without one gets an
// empty, unsaved document (Version 0).
func (r *HistoryRepository) GetHistory(ctx context.Context, user primitive.ObjectID) (*models.History, error) {
	var h models.History
	err := r.collection.FindOne(ctx, bson.M{"user": user}).Decode(&h)
	if err != nil {
		if translate(err) == ErrNotFound {
			return &models.History{User: user, Videos: []models.HistoryEntry{}}, nil
		}
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if h.Videos == nil {
		h.Videos = []models.HistoryEntry{}
	}
	return &h, nil
}

// SaveHistory writes the whole list if nobody saved since it was loaded.
func (r *HistoryRepository) SaveHistory(ctx context.Context, h *models.History) error {
	now := time.Now().UTC()
	next := *h
	next.Version = h.Version + 1
	next.UpdatedAt = now

	id, err := saveVersioned(ctx, r.collection, bson.M{"user": h.User}, h.Version, &next,
		bson.M{"videos": h.Videos, "updated_at": now})
	if err != nil {
		return err
	}
	if !id.IsZero() {
		h.ID = id
	}
	h.Version = next.Version
	h.UpdatedAt = now
	return nil
}
