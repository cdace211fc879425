package handlers

import (
	"net/http"
	"testing"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTweetLikeAndViews(t *testing.T) {
	s := newTestServer(t)
	author, fan := s.user("author"), s.user("fan")
	tweet := s.db.AddTweet(models.Tweet{Content: "hello", Owner: author.ID})

	rec, env := s.request("POST", "/likes/tweets/"+tweet.ID.Hex()+"/toggle", &fan, nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Message)
	var liked struct {
		IsLiked    bool  `json:"isLiked"`
		LikesCount int64 `json:"likesCount"`
	}
	decodeData(t, env, &liked)
	assert.True(t, liked.IsLiked)
	assert.Equal(t, int64(1), liked.LikesCount)
	require.Len(t, s.db.Notifications().For(author.ID), 1)

	_, env = s.request("GET", "/tweets/"+tweet.ID.Hex(), &fan, nil)
	var view models.TweetView
	decodeData(t, env, &view)
	assert.True(t, view.IsLiked)
	assert.Equal(t, int64(1), view.LikesCount)
	assert.Equal(t, "author", view.Owner.Username)

	_, env = s.request("GET", "/tweets/"+tweet.ID.Hex(), &author, nil)
	decodeData(t, env, &view)
	assert.False(t, view.IsLiked, "flags are per viewer")

	_, env = s.request("GET", "/tweets?owner="+author.ID.Hex(), &fan, nil)
	var page models.Page[models.TweetView]
	decodeData(t, env, &page)
	require.Len(t, page.Docs, 1)
	assert.Equal(t, tweet.ID, page.Docs[0].ID)

	rec, env = s.request("GET", "/tweets?owner=someone", &fan, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"owner"}, fieldNames(env.Errors))

	rec, _ = s.request("GET", "/tweets/"+author.ID.Hex(), &fan, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.request("POST", "/likes/tweets/"+author.ID.Hex()+"/toggle", &fan, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileEndpoint(t *testing.T) {
	s := newTestServer(t)
	viewer, creator := s.user("viewer"), s.user("creator")

	s.request("POST", "/follows/"+creator.ID.Hex()+"/toggle", &viewer, nil)
	s.request("POST", "/subscriptions/"+creator.ID.Hex()+"/toggle", &viewer, nil)

	rec, env := s.request("GET", "/users/"+creator.ID.Hex()+"/profile", &viewer, nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Message)
	var profile models.ProfileView
	decodeData(t, env, &profile)
	assert.Equal(t, "creator", profile.Username)
	assert.Equal(t, int64(1), profile.FollowersCount)
	assert.Equal(t, int64(1), profile.SubscribersCount)
	assert.True(t, profile.IsFollowing)
	assert.True(t, profile.IsSubscribed)

	_, env = s.request("GET", "/users/"+viewer.ID.Hex()+"/profile", &creator, nil)
	decodeData(t, env, &profile)
	assert.Equal(t, int64(1), profile.FollowingCount)
	assert.Equal(t, int64(1), profile.SubscribedToCount)
	assert.False(t, profile.IsFollowing)

	rec, _ = s.request("GET", "/users/"+s.video("not a user", 1).ID.Hex()+"/profile", &viewer, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
