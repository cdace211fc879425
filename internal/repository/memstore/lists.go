package memstore

import (
	"context"
	"time"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// takeConflict consumes one injected conflict for list. mu must be held.
func (db *DB) takeConflict(list string) bool {
	if db.conflicts[list] > 0 {
		db.conflicts[list]--
		return true
	}
	return false
}

type Histories struct{ db *DB }

func (s *Histories) GetHistory(_ context.Context, user primitive.ObjectID) (*models.History, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("GetHistory"); err != nil {
		return nil, err
	}
	h, ok := s.db.histories[user]
	if !ok {
		return &models.History{User: user, Videos: []models.HistoryEntry{}}, nil
	}
	h.Videos = append([]models.HistoryEntry{}, h.Videos...)
	return &h, nil
}

func (s *Histories) SaveHistory(_ context.Context, h *models.History) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("SaveHistory"); err != nil {
		return err
	}
	if s.db.takeConflict("history") || s.db.histories[h.User].Version != h.Version {
		return repository.ErrVersionConflict
	}
	stored := *h
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}
	stored.Version++
	stored.UpdatedAt = time.Now().UTC()
	stored.Videos = append([]models.HistoryEntry{}, h.Videos...)
	s.db.histories[h.User] = stored

	h.ID, h.Version, h.UpdatedAt = stored.ID, stored.Version, stored.UpdatedAt
	return nil
}

type WatchLaterLists struct{ db *DB }

func (s *WatchLaterLists) GetWatchLater(_ context.Context, owner primitive.ObjectID) (*models.WatchLater, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("GetWatchLater"); err != nil {
		return nil, err
	}
	wl, ok := s.db.watchLater[owner]
	if !ok {
		return &models.WatchLater{Owner: owner, Videos: []models.WatchLaterEntry{}}, nil
	}
	wl.Videos = append([]models.WatchLaterEntry{}, wl.Videos...)
	return &wl, nil
}

func (s *WatchLaterLists) SaveWatchLater(_ context.Context, wl *models.WatchLater) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("SaveWatchLater"); err != nil {
		return err
	}
	if s.db.takeConflict("watch_later") || s.db.watchLater[wl.Owner].Version != wl.Version {
		return repository.ErrVersionConflict
	}
	stored := *wl
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}
	stored.Version++
	stored.UpdatedAt = time.Now().UTC()
	stored.Videos = append([]models.WatchLaterEntry{}, wl.Videos...)
	s.db.watchLater[wl.Owner] = stored

	wl.ID, wl.Version, wl.UpdatedAt = stored.ID, stored.Version, stored.UpdatedAt
	return nil
}

func (s *WatchLaterLists) FindDueReminders(_ context.Context, now time.Time, limit int) ([]models.WatchLater, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("FindDueReminders"); err != nil {
		return nil, err
	}
	out := []models.WatchLater{}
	for _, wl := range s.db.watchLater {
		if len(out) >= limit {
			break
		}
		for _, e := range wl.Videos {
			if e.RemindAt != nil && !e.RemindAt.After(now) {
				wl.Videos = append([]models.WatchLaterEntry{}, wl.Videos...)
				out = append(out, wl)
				break
			}
		}
	}
	return out, nil
}
