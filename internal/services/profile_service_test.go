package services

import (
	"context"
	"testing"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProfileCountsAndFlags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	viewer, creator, other := f.user("viewer"), f.user("creator"), f.user("other")
	f.db.AddVideo(models.Video{Title: "v1", Owner: creator.ID})
	f.db.AddVideo(models.Video{Title: "v2", Owner: creator.ID})
	f.db.AddTweet(models.Tweet{Content: "t1", Owner: creator.ID})

	_, err := f.follows.Toggle(ctx, viewer.ID, creator.ID)
	require.NoError(t, err)
	_, err = f.subscriptions.Toggle(ctx, other.ID, creator.ID)
	require.NoError(t, err)
	_, err = f.follows.Toggle(ctx, creator.ID, other.ID)
	require.NoError(t, err)

	p, err := f.profiles.GetProfile(ctx, viewer.ID, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.FollowersCount)
	assert.Equal(t, int64(1), p.FollowingCount)
	assert.Equal(t, int64(1), p.SubscribersCount)
	assert.Zero(t, p.SubscribedToCount)
	assert.Equal(t, int64(2), p.VideosCount)
	assert.Equal(t, int64(1), p.TweetsCount)
	assert.True(t, p.IsFollowing)
	assert.False(t, p.IsSubscribed, "no edge means false, not an error")

	_, err = f.profiles.GetProfile(ctx, viewer.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTweetViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author, reader := f.user("author"), f.user("reader")
	tweet := f.db.AddTweet(models.Tweet{Content: "first", Owner: author.ID})
	f.db.AddTweet(models.Tweet{Content: "elsewhere", Owner: reader.ID})
	f.db.AddComment(models.Comment{Entity: tweet.ID, EntityKind: models.EntityTweet, Content: "nice"})
	f.db.AddComment(models.Comment{Entity: tweet.ID, EntityKind: models.EntityVideo, Content: "wrong kind"})

	_, err := f.likes.ToggleTweetLike(ctx, reader.ID, tweet.ID)
	require.NoError(t, err)

	v, err := f.profiles.GetTweet(ctx, reader.ID, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, "author", v.Owner.Username)
	assert.Equal(t, int64(1), v.LikesCount)
	assert.Equal(t, int64(1), v.CommentsCount)
	assert.True(t, v.IsLiked)

	v, err = f.profiles.GetTweet(ctx, author.ID, tweet.ID)
	require.NoError(t, err)
	assert.False(t, v.IsLiked)

	p, err := f.profiles.ListTweets(ctx, reader.ID, &author.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.TotalDocs)

	all, err := f.profiles.ListTweets(ctx, reader.ID, nil, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.TotalDocs)

	_, err = f.profiles.GetTweet(ctx, reader.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
