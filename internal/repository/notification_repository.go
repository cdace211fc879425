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
)

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notifications"),
	}
}

// CreateNotification inserts a new notification
func (r *NotificationRepository) CreateNotification(ctx context.Context, notif *models.Notification) error {
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now().UTC()
	}

	res, err := r.collection.InsertOne(ctx, notif)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert notification")
		return fmt.Errorf("failed to create notification: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		notif.ID = id
	}
	return nil
}

func notificationQuery(recipient primitive.ObjectID, f models.NotificationFilter) bson.M {
	filter := bson.M{"recipient": recipient}
	if f.Type != nil {
		filter["type"] = *f.Type
	}
	if f.Read != nil {
		filter["read"] = *f.Read
	}
	return filter
}

// ListNotifications returns one page of the recipient's notifications, newest
// first, each joined with the sender's public profile.
func (r *NotificationRepository) ListNotifications(ctx context.Context, recipient primitive.ObjectID, f models.NotificationFilter, page, limit int) ([]models.NotificationView, int64, error) {
	page, limit = normalizePage(page, limit)

	prefix := mongo.Pipeline{
		{{Key: "$match", Value: notificationQuery(recipient, f)}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	stages := lookupPublicUser("sender", "sender", true)

	return aggregatePage[models.NotificationView](ctx, r.collection, pagedPipeline(prefix, page, limit, stages...))
}

// CountUnread counts all unread notifications of the recipient.
func (r *NotificationRepository) CountUnread(ctx context.Context, recipient primitive.ObjectID) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"recipient": recipient, "read": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return n, nil
}

// MarkAsRead sets Read on one of the recipient's notifications. It reports
// whether the notification exists, regardless of its previous state.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, recipient, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "recipient": recipient},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// MarkAllAsRead marks every unread notification of the recipient as read.
func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, recipient primitive.ObjectID) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"recipient": recipient, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return res.ModifiedCount, nil
}

// DeleteNotification deletes a notification
func (r *NotificationRepository) DeleteNotification(ctx context.Context, recipient, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "recipient": recipient})
	if err != nil {
		return false, fmt.Errorf("failed to delete notification: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// DeleteAllNotifications removes every notification of the recipient.
func (r *NotificationRepository) DeleteAllNotifications(ctx context.Context, recipient primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"recipient": recipient})
	if err != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", err)
	}
	logrus.Infof("Deleted %d notifications for %s", res.DeletedCount, recipient.Hex())
	return res.DeletedCount, nil
}
