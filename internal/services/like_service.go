package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeService toggles tweet likes. It follows the same edge toggle as
// follows, with the tweet as target.
type LikeService struct {
	likes    EdgeStore
	tweets   TweetStore
	users    UserStore
	queue    NotificationQueue
	recorder Recorder
}

func NewLikeService(likes EdgeStore, tweets TweetStore, users UserStore, queue NotificationQueue, recorder Recorder) *LikeService {
	return &LikeService{likes: likes, tweets: tweets, users: users, queue: queue, recorder: recorder}
}

// ToggleTweetLike flips the user's like on a tweet and returns the fresh like count.
// Owners liking their own tweet are not notified.
func (s *LikeService) ToggleTweetLike(ctx context.Context, user, tweetID primitive.ObjectID) (*models.ToggleResult, error) {
	tweet, err := s.tweets.GetTweetByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("tweet not found")
		}
		return nil, apperrors.Internal("failed to load tweet", err)
	}

	liked, err := s.likes.Exists(ctx, user, tweetID)
	if err != nil {
		return nil, apperrors.Internal("failed to check like", err)
	}

	ref := models.NewEntityRef(models.EntityTweet, tweetID)
	if liked {
		if _, err := s.likes.Delete(ctx, user, tweetID); err != nil {
			return nil, apperrors.Internal("failed to remove like", err)
		}
		_ = s.recorder.Record(ctx, user, models.ActivityTweetUnlike, ref, nil)
	} else {
		err := s.likes.Create(ctx, user, tweetID)
		switch {
		case errors.Is(err, repository.ErrDuplicate):
		case err != nil:
			return nil, apperrors.Internal("failed to like tweet", err)
		default:
			if tweet.Owner != user {
				name := "Someone"
				if u, err := s.users.GetUserByID(ctx, user); err == nil && u.Username != "" {
					name = u.Username
				}
				s.queue.Enqueue(tweet.Owner, user, models.NotificationLike, fmt.Sprintf("%s liked your tweet", name))
			}
			_ = s.recorder.Record(ctx, user, models.ActivityTweetLike, ref, nil)
		}
	}

	count, err := s.likes.CountInbound(ctx, tweetID)
	if err != nil {
		return nil, apperrors.Internal("failed to count likes", err)
	}
	return &models.ToggleResult{Active: !liked, Count: count}, nil
}
