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

// RelationRepository stores one directed edge set (follows, subscriptions or
// tweet likes). Uniqueness of (from, to) is enforced by a unique index.
type RelationRepository struct {
	collection *mongo.Collection
	fromField  string
	toField    string
	newEdge    func(from, to primitive.ObjectID, at time.Time) interface{}
}

func NewFollowRepository(db *mongo.Database) *RelationRepository {
	return &RelationRepository{
		collection: db.Collection("follows"),
		fromField:  "follower",
		toField:    "followee",
		newEdge: func(from, to primitive.ObjectID, at time.Time) interface{} {
			return &models.Follow{Follower: from, Followee: to, CreatedAt: at}
		},
	}
}

func NewSubscriptionRepository(db *mongo.Database) *RelationRepository {
	return &RelationRepository{
		collection: db.Collection("subscriptions"),
		fromField:  "subscriber",
		toField:    "channel",
		newEdge: func(from, to primitive.ObjectID, at time.Time) interface{} {
			return &models.Subscription{Subscriber: from, Channel: to, CreatedAt: at}
		},
	}
}

func NewTweetLikeRepository(db *mongo.Database) *RelationRepository {
	return &RelationRepository{
		collection: db.Collection("likes"),
		fromField:  "liked_by",
		toField:    "tweet",
		newEdge: func(from, to primitive.ObjectID, at time.Time) interface{} {
			return &models.TweetLike{LikedBy: from, Tweet: to, CreatedAt: at}
		},
	}
}

func (r *RelationRepository) pair(from, to primitive.ObjectID) bson.M {
	return bson.M{r.fromField: from, r.toField: to}
}

// Create inserts the edge. A concurrent duplicate surfaces as ErrDuplicate.
func (r *RelationRepository) Create(ctx context.Context, from, to primitive.ObjectID) error {
	_, err := r.collection.InsertOne(ctx, r.newEdge(from, to, time.Now().UTC()))
	if err != nil {
		if err = translate(err); err == ErrDuplicate {
			return err
		}
		return fmt.Errorf("failed to insert %s edge: %w", r.collection.Name(), err)
	}
	return nil
}

// Delete removes the edge and reports whether one existed.
func (r *RelationRepository) Delete(ctx context.Context, from, to primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, r.pair(from, to))
	if err != nil {
		return false, fmt.Errorf("failed to delete %s edge: %w", r.collection.Name(), err)
	}
	return res.DeletedCount > 0, nil
}

func (r *RelationRepository) Exists(ctx context.Context, from, to primitive.ObjectID) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, r.pair(from, to), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check %s edge: %w", r.collection.Name(), err)
	}
	return n > 0, nil
}

// CountInbound counts edges pointing at to (followers, subscribers, likes).
func (r *RelationRepository) CountInbound(ctx context.Context, to primitive.ObjectID) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{r.toField: to})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.collection.Name(), err)
	}
	return n, nil
}

// List returns one page of the subject's edges in the given direction,
// newest first, each joined with the other party's public profile.
func (r *RelationRepository) List(ctx context.Context, subject primitive.ObjectID, dir models.Direction, page, limit int) ([]models.Connection, int64, error) {
	page, limit = normalizePage(page, limit)

	matchField, otherField := r.toField, r.fromField
	if dir == models.Outbound {
		matchField, otherField = r.fromField, r.toField
	}

	prefix := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{matchField: subject}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	stages := lookupPublicUser(otherField, "user", false)
	stages = append(stages, bson.D{{Key: "$project", Value: bson.D{
		{Key: "_id", Value: 0},
		{Key: "user", Value: 1},
		{Key: "since", Value: "$created_at"},
	}}})

	return aggregatePage[models.Connection](ctx, r.collection, pagedPipeline(prefix, page, limit, stages...))
}
