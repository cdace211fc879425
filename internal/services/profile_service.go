package services

import (
	"context"
	"errors"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileService serves the viewer-dependent read views. Counts are
// recomputed on every call.
type ProfileService struct {
	repo ProfileStore
}

func NewProfileService(repo ProfileStore) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) GetProfile(ctx context.Context, viewer, user primitive.ObjectID) (*models.ProfileView, error) {
	view, err := s.repo.GetProfile(ctx, viewer, user)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("failed to load profile", err)
	}
	return view, nil
}

// ListTweets pages tweets newest first; owner narrows to one author.
func (s *ProfileService) ListTweets(ctx context.Context, viewer primitive.ObjectID, owner *primitive.ObjectID, page, limit int) (*models.Page[models.TweetView], error) {
	page, limit = NormalizePage(page, limit)
	tweets, total, err := s.repo.ListTweets(ctx, viewer, owner, page, limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list tweets", err)
	}
	p := models.NewPage(tweets, total, page, limit)
	return &p, nil
}

func (s *ProfileService) GetTweet(ctx context.Context, viewer, id primitive.ObjectID) (*models.TweetView, error) {
	view, err := s.repo.GetTweet(ctx, viewer, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("tweet not found")
		}
		return nil, apperrors.Internal("failed to load tweet", err)
	}
	return view, nil
}
