package services

import (
	"context"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService struct {
	repo NotificationStore
}

func NewNotificationService(repo NotificationStore) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify stores one notification. Every call creates a new record; there is
// no deduplication or coalescing.
func (s *NotificationService) Notify(ctx context.Context, recipient, sender primitive.ObjectID, typ models.NotificationType, message string) error {
	if !typ.Valid() {
		return apperrors.Validation("invalid notification type")
	}
	notif := &models.Notification{
		Recipient: recipient,
		Sender:    sender,
		Type:      typ,
		Message:   message,
		Read:      false,
	}
	if err := s.repo.CreateNotification(ctx, notif); err != nil {
		return apperrors.Internal("failed to create notification", err)
	}
	return nil
}

// GetUserNotifications returns one page of the recipient's notifications
// together with their total unread count.
func (s *NotificationService) GetUserNotifications(ctx context.Context, recipient primitive.ObjectID, f models.NotificationFilter, page, limit int) (*models.NotificationPage, error) {
	if f.Type != nil && !f.Type.Valid() {
		return nil, apperrors.Validation("invalid notification type")
	}
	page, limit = NormalizePage(page, limit)

	docs, total, err := s.repo.ListNotifications(ctx, recipient, f, page, limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list notifications", err)
	}
	unread, err := s.repo.CountUnread(ctx, recipient)
	if err != nil {
		return nil, apperrors.Internal("failed to count unread notifications", err)
	}

	return &models.NotificationPage{
		Page:        models.NewPage(docs, total, page, limit),
		UnreadCount: unread,
	}, nil
}

// MarkNotificationAsRead is safe to repeat on an already read notification.
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, recipient, id primitive.ObjectID) error {
	ok, err := s.repo.MarkAsRead(ctx, recipient, id)
	if err != nil {
		return apperrors.Internal("failed to mark notification as read", err)
	}
	if !ok {
		return apperrors.NotFound("notification not found")
	}
	return nil
}

// MarkAllAsRead returns how many unread notifications were flipped.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, recipient primitive.ObjectID) (int64, error) {
	n, err := s.repo.MarkAllAsRead(ctx, recipient)
	if err != nil {
		return 0, apperrors.Internal("failed to mark notifications as read", err)
	}
	return n, nil
}

func (s *NotificationService) DeleteNotification(ctx context.Context, recipient, id primitive.ObjectID) error {
	ok, err := s.repo.DeleteNotification(ctx, recipient, id)
	if err != nil {
		return apperrors.Internal("failed to delete notification", err)
	}
	if !ok {
		return apperrors.NotFound("notification not found")
	}
	return nil
}

// ClearNotifications deletes everything addressed to the recipient.
func (s *NotificationService) ClearNotifications(ctx context.Context, recipient primitive.ObjectID) (int64, error) {
	n, err := s.repo.DeleteAllNotifications(ctx, recipient)
	if err != nil {
		return 0, apperrors.Internal("failed to clear notifications", err)
	}
	logrus.WithFields(logrus.Fields{"recipient": recipient.Hex(), "deleted": n}).Info("Notifications cleared")
	return n, nil
}
