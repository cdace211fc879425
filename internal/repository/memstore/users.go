package memstore

import (
	"context"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Users struct{ db *DB }

func (s *Users) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("GetUserByID"); err != nil {
		return nil, err
	}
	u, ok := s.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *Users) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("UserExists"); err != nil {
		return false, err
	}
	_, ok := s.db.users[id]
	return ok, nil
}

type Videos struct{ db *DB }

func (s *Videos) GetVideoByID(_ context.Context, id primitive.ObjectID) (*models.Video, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("GetVideoByID"); err != nil {
		return nil, err
	}
	v, ok := s.db.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (s *Videos) GetVideosByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Video, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("GetVideosByIDs"); err != nil {
		return nil, err
	}
	out := []models.Video{}
	for _, id := range ids {
		if v, ok := s.db.videos[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

type Tweets struct{ db *DB }

func (s *Tweets) GetTweetByID(_ context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("GetTweetByID"); err != nil {
		return nil, err
	}
	t, ok := s.db.tweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}
