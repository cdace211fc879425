package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ActivityRepository struct {
	collection *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{
		collection: db.Collection("activities"),
	}
}

// CreateActivity inserts a new activity log
func (r *ActivityRepository) CreateActivity(ctx context.Context, activity *models.Activity) error {
	res, err := r.collection.InsertOne(ctx, activity)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert activity")
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		activity.ID = id
	}
	return nil
}

func activityQuery(f models.ActivityFilter) bson.M {
	filter := bson.M{"user": f.User}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	created := bson.M{}
	if !f.StartDate.IsZero() {
		created["$gte"] = f.StartDate
	}
	if !f.EndDate.IsZero() {
		created["$lte"] = f.EndDate
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}
	return filter
}

// FindActivities fetches one page of a user's activities, newest first, and the total match count.
func (r *ActivityRepository) FindActivities(ctx context.Context, f models.ActivityFilter, page, limit int) ([]models.Activity, int64, error) {
	page, limit = normalizePage(page, limit)
	filter := activityQuery(f)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skipFor(page, limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, 0, fmt.Errorf("failed to decode activities: %w", err)
	}
	return activities, total, nil
}

// Summarize aggregates a user's activities since the given instant into
// per-type and per-day counts.
func (r *ActivityRepository) Summarize(ctx context.Context, user primitive.ObjectID, since time.Time) (*models.ActivitySummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user": user, "created_at": bson.M{"$gte": since}}}},
		{{Key: "$facet", Value: bson.D{
			{Key: "by_type", Value: mongo.Pipeline{
				{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: "$type"},
					{Key: "count", Value: bson.M{"$sum": 1}},
					{Key: "last", Value: bson.M{"$max": "$created_at"}},
				}}},
				{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
			}},
			{Key: "by_day", Value: mongo.Pipeline{
				{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at", "timezone": "UTC"}}},
					{Key: "count", Value: bson.M{"$sum": 1}},
				}}},
				{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
			}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize activities: %w", err)
	}
	defer cursor.Close(ctx)

	var res struct {
		ByType []models.ActivityTypeCount `bson:"by_type"`
		ByDay  []models.ActivityDayCount  `bson:"by_day"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&res); err != nil {
			return nil, fmt.Errorf("failed to decode activity summary: %w", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	summary := &models.ActivitySummary{
		ByType: res.ByType,
		ByDay:  res.ByDay,
	}
	if summary.ByType == nil {
		summary.ByType = []models.ActivityTypeCount{}
	}
	if summary.ByDay == nil {
		summary.ByDay = []models.ActivityDayCount{}
	}
	for _, t := range summary.ByType {
		summary.Total += t.Count
	}
	return summary, nil
}

// DeleteActivity removes one of the user's activities; false when none matched.
func (r *ActivityRepository) DeleteActivity(ctx context.Context, user, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user": user})
	if err != nil {
		return false, fmt.Errorf("failed to delete activity: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// DeleteActivities removes all of the user's activities, optionally of one type.
func (r *ActivityRepository) DeleteActivities(ctx context.Context, user primitive.ObjectID, typ models.ActivityType) (int64, error) {
	filter := bson.M{"user": user}
	if typ != "" {
		filter["type"] = typ
	}
	res, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete activities: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": user.Hex(), "deleted": res.DeletedCount}).Info("Activities purged")
	return res.DeletedCount, nil
}
