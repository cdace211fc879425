package memstore

import (
	"context"
	"time"

	"github.com/Dias221467/streamify/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notifications struct{ db *DB }

func (s *Notifications) CreateNotification(_ context.Context, n *models.Notification) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("CreateNotification"); err != nil {
		return err
	}
	n.ID = primitive.NewObjectID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	s.db.notifications = append(s.db.notifications, *n)
	return nil
}

// For returns a copy of the recipient's notifications, oldest first.
func (s *Notifications) For(recipient primitive.ObjectID) []models.Notification {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.Notification
	for _, n := range s.db.notifications {
		if n.Recipient == recipient {
			out = append(out, n)
		}
	}
	return out
}

func (s *Notifications) ListNotifications(_ context.Context, recipient primitive.ObjectID, f models.NotificationFilter, p, limit int) ([]models.NotificationView, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("ListNotifications"); err != nil {
		return nil, 0, err
	}
	var views []models.NotificationView
	for i := len(s.db.notifications) - 1; i >= 0; i-- {
		n := s.db.notifications[i]
		if n.Recipient != recipient {
			continue
		}
		if f.Type != nil && n.Type != *f.Type {
			continue
		}
		if f.Read != nil && n.Read != *f.Read {
			continue
		}
		v := models.NotificationView{
			ID: n.ID, Recipient: n.Recipient, Type: n.Type,
			Message: n.Message, Read: n.Read, CreatedAt: n.CreatedAt,
		}
		if u, ok := s.db.users[n.Sender]; ok {
			pu := public(u)
			v.Sender = &pu
		}
		views = append(views, v)
	}
	docs, total := page(views, p, limit)
	return docs, total, nil
}

func (s *Notifications) CountUnread(_ context.Context, recipient primitive.ObjectID) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("CountUnread"); err != nil {
		return 0, err
	}
	var n int64
	for _, notif := range s.db.notifications {
		if notif.Recipient == recipient && !notif.Read {
			n++
		}
	}
	return n, nil
}

func (s *Notifications) MarkAsRead(_ context.Context, recipient, id primitive.ObjectID) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("MarkAsRead"); err != nil {
		return false, err
	}
	for i := range s.db.notifications {
		n := &s.db.notifications[i]
		if n.ID == id && n.Recipient == recipient {
			n.Read = true
			return true, nil
		}
	}
	return false, nil
}

func (s *Notifications) MarkAllAsRead(_ context.Context, recipient primitive.ObjectID) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("MarkAllAsRead"); err != nil {
		return 0, err
	}
	var count int64
	for i := range s.db.notifications {
		n := &s.db.notifications[i]
		if n.Recipient == recipient && !n.Read {
			n.Read = true
			count++
		}
	}
	return count, nil
}

func (s *Notifications) DeleteNotification(_ context.Context, recipient, id primitive.ObjectID) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("DeleteNotification"); err != nil {
		return false, err
	}
	for i, n := range s.db.notifications {
		if n.ID == id && n.Recipient == recipient {
			s.db.notifications = append(s.db.notifications[:i], s.db.notifications[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Notifications) DeleteAllNotifications(_ context.Context, recipient primitive.ObjectID) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("DeleteAllNotifications"); err != nil {
		return 0, err
	}
	kept := s.db.notifications[:0]
	var count int64
	for _, n := range s.db.notifications {
		if n.Recipient == recipient {
			count++
			continue
		}
		kept = append(kept, n)
	}
	s.db.notifications = kept
	return count, nil
}
