package memstore

import (
	"context"
	"sort"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Profiles struct{ db *DB }

func hasEdge(set []edge, from, to primitive.ObjectID) bool {
	for _, e := range set {
		if e.from == from && e.to == to {
			return true
		}
	}
	return false
}

func (s *Profiles) GetProfile(_ context.Context, viewer, user primitive.ObjectID) (*models.ProfileView, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("GetProfile"); err != nil {
		return nil, err
	}
	u, ok := s.db.users[user]
	if !ok {
		return nil, repository.ErrNotFound
	}

	view := &models.ProfileView{
		ID:                u.ID,
		Username:          u.Username,
		FullName:          u.FullName,
		Avatar:            u.Avatar,
		CoverImage:        u.CoverImage,
		CreatedAt:         u.CreatedAt,
		FollowersCount:    countTo(s.db.follows, user),
		FollowingCount:    countFrom(s.db.follows, user),
		SubscribersCount:  countTo(s.db.subscriptions, user),
		SubscribedToCount: countFrom(s.db.subscriptions, user),
		IsFollowing:       hasEdge(s.db.follows, viewer, user),
		IsSubscribed:      hasEdge(s.db.subscriptions, viewer, user),
	}
	for _, v := range s.db.videos {
		if v.Owner == user {
			view.VideosCount++
		}
	}
	for _, t := range s.db.tweets {
		if t.Owner == user {
			view.TweetsCount++
		}
	}
	return view, nil
}

// tweetView must be called with mu held.
func (s *Profiles) tweetView(viewer primitive.ObjectID, t models.Tweet) (models.TweetView, bool) {
	owner, ok := s.db.users[t.Owner]
	if !ok {
		return models.TweetView{}, false
	}
	view := models.TweetView{
		ID:         t.ID,
		Content:    t.Content,
		Owner:      public(owner),
		LikesCount: countTo(s.db.likes, t.ID),
		IsLiked:    hasEdge(s.db.likes, viewer, t.ID),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	for _, c := range s.db.comments {
		if c.Entity == t.ID && c.EntityKind == models.EntityTweet {
			view.CommentsCount++
		}
	}
	return view, true
}

func (s *Profiles) ListTweets(_ context.Context, viewer primitive.ObjectID, owner *primitive.ObjectID, p, limit int) ([]models.TweetView, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("ListTweets"); err != nil {
		return nil, 0, err
	}
	var tweets []models.Tweet
	for _, t := range s.db.tweets {
		if owner == nil || t.Owner == *owner {
			tweets = append(tweets, t)
		}
	}
	sort.Slice(tweets, func(i, j int) bool {
		if !tweets[i].CreatedAt.Equal(tweets[j].CreatedAt) {
			return tweets[i].CreatedAt.After(tweets[j].CreatedAt)
		}
		return tweets[i].ID.Hex() > tweets[j].ID.Hex()
	})

	views := make([]models.TweetView, 0, len(tweets))
	for _, t := range tweets {
		if v, ok := s.tweetView(viewer, t); ok {
			views = append(views, v)
		}
	}
	docs, total := page(views, p, limit)
	return docs, total, nil
}

func (s *Profiles) GetTweet(_ context.Context, viewer, id primitive.ObjectID) (*models.TweetView, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("GetTweet"); err != nil {
		return nil, err
	}
	t, ok := s.db.tweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v, ok := s.tweetView(viewer, t)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}
