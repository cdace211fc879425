package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/streamify/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WatchLaterRepository struct {
	collection *mongo.Collection
}

func NewWatchLaterRepository(db *mongo.Database) *WatchLaterRepository {
	return &WatchLaterRepository{collection: db.Collection("watch_later")}
}

// GetWatchLater loads the owner's list, or an empty unsaved one.
func (r *WatchLaterRepository) GetWatchLater(ctx context.Context, owner primitive.ObjectID) (*models.WatchLater, error) {
	var wl models.WatchLater
	err := r.collection.FindOne(ctx, bson.M{"owner": owner}).Decode(&wl)
	if err != nil {
		if translate(err) == ErrNotFound {
			return &models.WatchLater{Owner: owner, Videos: []models.WatchLaterEntry{}}, nil
		}
		return nil, fmt.Errorf("failed to load watch later list: %w", err)
	}
	if wl.Videos == nil {
		wl.Videos = []models.WatchLaterEntry{}
	}
	return &wl, nil
}

// SaveWatchLater writes the whole list if nobody saved since it was loaded.
func (r *WatchLaterRepository) SaveWatchLater(ctx context.Context, wl *models.WatchLater) error {
	now := time.Now().UTC()
	next := *wl
	next.Version = wl.Version + 1
	next.UpdatedAt = now

	id, err := saveVersioned(ctx, r.collection, bson.M{"owner": wl.Owner}, wl.Version, &next,
		bson.M{"videos": wl.Videos, "updated_at": now})
	if err != nil {
		return err
	}
	if !id.IsZero() {
		wl.ID = id
	}
	wl.Version = next.Version
	wl.UpdatedAt = now
	return nil
}

// FindDueReminders returns up to limit lists holding at least one reminder at or before now.
func (r *WatchLaterRepository) FindDueReminders(ctx context.Context, now time.Time, limit int) ([]models.WatchLater, error) {
	opts := options.Find().SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"videos.remind_at": bson.M{"$lte": now}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find due reminders: %w", err)
	}
	defer cursor.Close(ctx)

	lists := []models.WatchLater{}
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, fmt.Errorf("failed to decode watch later lists: %w", err)
	}
	return lists, nil
}
