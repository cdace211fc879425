package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryEndpoints(t *testing.T) {
	s := newTestServer(t)
	u := s.user("ana")
	a, b := s.video("Alpha", 120), s.video("Beta", 300)

	rec, env := s.request("POST", "/history/add/"+a.ID.Hex(), &u, map[string]float64{"playbackTimestamp": 30})
	require.Equal(t, http.StatusOK, rec.Code, env.Message)
	var item models.HistoryItemView
	decodeData(t, env, &item)
	assert.Equal(t, 25, item.Progress)
	assert.Equal(t, float64(120), item.VideoDuration)

	rec, _ = s.request("POST", "/history/add/"+b.ID.Hex(), &u, nil)
	require.Equal(t, http.StatusOK, rec.Code, "the body is optional")

	rec, env = s.request("POST", "/history/add/"+a.ID.Hex(), &u, map[string]float64{"playbackTimestamp": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"playbackTimestamp"}, fieldNames(env.Errors))

	rec, _ = s.request("POST", "/history/add/"+s.user("not-a-video").ID.Hex(), &u, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, env = s.request("GET", "/history", &u, nil)
	var page models.Page[models.HistoryItemView]
	decodeData(t, env, &page)
	require.Len(t, page.Docs, 2)
	assert.Equal(t, "Beta", page.Docs[0].Video.Title)

	rec, env = s.request("POST", "/history/remove", &u, map[string][]string{"videoIds": {"bad"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"videoIds[0]"}, fieldNames(env.Errors))

	rec, _ = s.request("POST", "/history/remove", &u, map[string][]string{"videoIds": {}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, env = s.request("POST", "/history/remove", &u, map[string][]string{"videoIds": {a.ID.Hex(), s.video("Gamma", 1).ID.Hex()}})
	var removed map[string]int
	decodeData(t, env, &removed)
	assert.Equal(t, 1, removed["removedCount"])

	rec, _ = s.request("DELETE", "/history/"+a.ID.Hex(), &u, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.request("DELETE", "/history/"+b.ID.Hex(), &u, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.request("DELETE", "/history", &u, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "clearing an empty history is fine")
}

func TestHistoryStoreFailureIsOpaque(t *testing.T) {
	s := newTestServer(t)
	u := s.user("ana")
	s.db.Fail("GetHistory", errors.New("mongo: connection refused"))

	rec, env := s.request("GET", "/history", &u, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", env.Message)
	assert.False(t, strings.Contains(rec.Body.String(), "connection refused"))
}

func TestWatchLaterEndpoints(t *testing.T) {
	s := newTestServer(t)
	u := s.user("ana")
	go101 := s.video("Go 101", 600)
	rust := s.video("Rust basics", 900)

	rec, env := s.request("POST", "/watchlater/"+go101.ID.Hex(), &u, nil)
	require.Equal(t, http.StatusCreated, rec.Code, env.Message)
	rec, _ = s.request("POST", "/watchlater/"+rust.ID.Hex(), &u, map[string]interface{}{"remindAt": nil})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = s.request("POST", "/watchlater/"+go101.ID.Hex(), &u, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)

	rec, env = s.request("POST", "/watchlater/"+s.video("Zig", 60).ID.Hex(), &u,
		map[string]interface{}{"remindAt": time.Now().Add(-time.Hour)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"remindAt"}, fieldNames(env.Errors))

	_, env = s.request("GET", "/watchlater?sort=title", &u, nil)
	var page models.Page[models.WatchLaterItemView]
	decodeData(t, env, &page)
	require.Len(t, page.Docs, 2)
	assert.Equal(t, "Go 101", page.Docs[0].Video.Title)

	_, env = s.request("GET", "/watchlater?q=RUST&window=today", &u, nil)
	decodeData(t, env, &page)
	require.Len(t, page.Docs, 1)
	assert.Equal(t, rust.ID, page.Docs[0].Video.ID)

	rec, env = s.request("GET", "/watchlater?sort=loudest", &u, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"sort"}, fieldNames(env.Errors))

	due := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	rec, env = s.request("PATCH", "/watchlater/"+go101.ID.Hex()+"/reminder", &u, map[string]interface{}{"remindAt": due})
	require.Equal(t, http.StatusOK, rec.Code, env.Message)
	var entry models.WatchLaterEntry
	decodeData(t, env, &entry)
	require.NotNil(t, entry.RemindAt)
	assert.True(t, due.Equal(*entry.RemindAt))

	rec, env = s.request("PATCH", "/watchlater/"+go101.ID.Hex()+"/reminder", &u, map[string]interface{}{"remindAt": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Reminder cleared", env.Message)

	rec, _ = s.request("PATCH", "/watchlater/"+s.video("Elm", 60).ID.Hex()+"/reminder", &u, map[string]interface{}{"remindAt": due})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, env = s.request("POST", "/watchlater/remove", &u, map[string][]string{"videoIds": {rust.ID.Hex()}})
	var removed map[string]int
	decodeData(t, env, &removed)
	assert.Equal(t, 1, removed["removedCount"])

	rec, _ = s.request("DELETE", "/watchlater/"+rust.ID.Hex(), &u, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = s.request("DELETE", "/watchlater/clear", &u, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Watch later cleared", env.Message)

	_, env = s.request("GET", "/watchlater", &u, nil)
	decodeData(t, env, &page)
	assert.Empty(t, page.Docs)

	types := activityTypesOf(s)
	assert.Equal(t, []models.ActivityType{
		models.ActivityWatchLaterAdd, models.ActivityWatchLaterAdd,
	}, types)
}

func activityTypesOf(s *testServer) []models.ActivityType {
	var out []models.ActivityType
	for _, a := range s.db.Activities().All() {
		out = append(out, a.Type)
	}
	return out
}
