package database

import (
	"context"
	"fmt"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexSpecs lists the indexes the invariants depend on: edge uniqueness,
// one list document per user, and the activity retention TTL.
func indexSpecs() map[string][]mongo.IndexModel {
	ttl := int32(models.ActivityRetention.Seconds())

	return map[string][]mongo.IndexModel{
		"follows": {
			{Keys: bson.D{{Key: "follower", Value: 1}, {Key: "followee", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "followee", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"subscriptions": {
			{Keys: bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "channel", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"likes": {
			{Keys: bson.D{{Key: "liked_by", Value: 1}, {Key: "tweet", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "tweet", Value: 1}}},
		},
		"activities": {
			{Keys: bson.D{{Key: "created_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(ttl)},
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"notifications": {
			{Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "read", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"histories": {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"watch_later": {
			{Keys: bson.D{{Key: "owner", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "videos.remind_at", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
	}
}

// EnsureIndexes creates all indexes. CreateMany is a no-op for existing ones.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, specs := range indexSpecs() {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, specs)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
		logger.Log.WithField("collection", coll).Debugf("Indexes ensured: %v", names)
	}
	return nil
}
