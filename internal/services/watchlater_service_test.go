package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func titles(p *models.Page[models.WatchLaterItemView]) []string {
	out := make([]string, len(p.Docs))
	for i, d := range p.Docs {
		out[i] = d.Video.Title
	}
	return out
}

func TestWatchLaterRejectsDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("ana")
	v := f.video("Lecture", 3600)

	item, err := f.watchLater.AddToWatchLater(ctx, u.ID, v.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Lecture", item.Video.Title)

	_, err = f.watchLater.AddToWatchLater(ctx, u.ID, v.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	wl, err := f.db.WatchLater().GetWatchLater(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, wl.Videos, 1)
	assert.Equal(t, []models.ActivityType{models.ActivityWatchLaterAdd}, activityTypes(f.db.Activities().All()))
}

func TestWatchLaterAddValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("ana")
	v := f.video("Lecture", 3600)
	past := time.Now().Add(-time.Minute)

	_, err := f.watchLater.AddToWatchLater(ctx, u.ID, v.ID, &past)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	require.Len(t, apperrors.FieldErrors(err), 1)
	assert.Equal(t, "remindAt", apperrors.FieldErrors(err)[0].Field)

	_, err = f.watchLater.AddToWatchLater(ctx, u.ID, primitive.NewObjectID(), nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWatchLaterReminder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("ana")
	v := f.video("Lecture", 3600)
	_, err := f.watchLater.AddToWatchLater(ctx, u.ID, v.ID, nil)
	require.NoError(t, err)

	future := time.Now().Add(time.Hour)
	entry, err := f.watchLater.SetReminder(ctx, u.ID, v.ID, &future)
	require.NoError(t, err)
	require.NotNil(t, entry.RemindAt)
	assert.True(t, entry.RemindAt.Equal(future))

	past := time.Now().Add(-time.Second)
	_, err = f.watchLater.SetReminder(ctx, u.ID, v.ID, &past)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	entry, err = f.watchLater.SetReminder(ctx, u.ID, v.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, entry.RemindAt)

	_, err = f.watchLater.SetReminder(ctx, u.ID, primitive.NewObjectID(), nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWatchLaterRemoval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("ana")
	a, b := f.video("A", 1), f.video("B", 1)
	for _, v := range []models.Video{a, b} {
		_, err := f.watchLater.AddToWatchLater(ctx, u.ID, v.ID, nil)
		require.NoError(t, err)
	}

	require.NoError(t, f.watchLater.RemoveFromWatchLater(ctx, u.ID, a.ID))
	assert.ErrorIs(t, f.watchLater.RemoveFromWatchLater(ctx, u.ID, a.ID), apperrors.ErrNotFound)

	n, err := f.watchLater.RemoveManyFromWatchLater(ctx, u.ID, []primitive.ObjectID{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, f.watchLater.ClearWatchLater(ctx, u.ID))
	assert.Contains(t, activityTypes(f.db.Activities().All()), models.ActivityWatchLaterRemove)
}

func TestGetWatchLaterSearchSortWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("ana")
	now := time.Date(2024, 6, 15, 15, 0, 0, 0, time.UTC)

	add := func(title, desc string, dur float64, views int64, addedAt time.Time) {
		v := f.db.AddVideo(models.Video{Title: title, Description: desc, Duration: dur, Views: views})
		f.watchLater.now = func() time.Time { return addedAt }
		_, err := f.watchLater.AddToWatchLater(ctx, u.ID, v.ID, nil)
		require.NoError(t, err)
	}
	add("Go concurrency", "channels and goroutines", 1200, 50, now.AddDate(0, 0, -20))
	add("Cooking pasta", "a quick dinner", 600, 900, now.AddDate(0, 0, -3))
	add("advanced Go", "generics", 2400, 10, now.Add(-2*time.Hour))
	f.watchLater.now = func() time.Time { return now }

	get := func(q models.WatchLaterQuery) []string {
		p, err := f.watchLater.GetWatchLater(ctx, u.ID, q, 1, 10)
		require.NoError(t, err)
		return titles(p)
	}

	assert.Equal(t, []string{"advanced Go", "Cooking pasta", "Go concurrency"}, get(models.WatchLaterQuery{}))
	assert.Equal(t, []string{"Go concurrency", "Cooking pasta", "advanced Go"}, get(models.WatchLaterQuery{Sort: models.SortOldest}))
	assert.Equal(t, []string{"advanced Go", "Cooking pasta", "Go concurrency"}, get(models.WatchLaterQuery{Sort: models.SortTitle}))
	assert.Equal(t, []string{"advanced Go", "Go concurrency", "Cooking pasta"}, get(models.WatchLaterQuery{Sort: models.SortDuration}))
	assert.Equal(t, []string{"Cooking pasta", "Go concurrency", "advanced Go"}, get(models.WatchLaterQuery{Sort: models.SortViews}))

	assert.Equal(t, []string{"advanced Go", "Go concurrency"}, get(models.WatchLaterQuery{Search: "GO"}))
	assert.Equal(t, []string{"Go concurrency"}, get(models.WatchLaterQuery{Search: "goroutines"}))
	assert.Equal(t, []string{"advanced Go"}, get(models.WatchLaterQuery{Window: models.WindowToday}))
	assert.Equal(t, []string{"advanced Go", "Cooking pasta"}, get(models.WatchLaterQuery{Window: models.WindowWeek}))
	assert.Len(t, get(models.WatchLaterQuery{Window: models.WindowMonth}), 3)

	wl, err := f.db.WatchLater().GetWatchLater(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2400.0, f.mustVideo(t, wl.Videos[0].Video).Duration, "stored order is unchanged by reads")

	_, err = f.watchLater.GetWatchLater(ctx, u.ID, models.WatchLaterQuery{Sort: "random"}, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = f.watchLater.GetWatchLater(ctx, u.ID, models.WatchLaterQuery{Window: "year"}, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func (f *fixture) mustVideo(t *testing.T, id primitive.ObjectID) *models.Video {
	t.Helper()
	v, err := f.db.Videos().GetVideoByID(context.Background(), id)
	require.NoError(t, err)
	return v
}

func TestWatchLaterCapAndRetry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("hoarder")
	f.watchLater.recorder = NoopRecorder{}

	var first primitive.ObjectID
	for i := 0; i < models.WatchLaterCap+1; i++ {
		v := f.video("v", 1)
		if i == 0 {
			first = v.ID
		}
		_, err := f.watchLater.AddToWatchLater(ctx, u.ID, v.ID, nil)
		require.NoError(t, err)
	}
	wl, err := f.db.WatchLater().GetWatchLater(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, wl.Videos, models.WatchLaterCap)
	assert.Equal(t, -1, indexOf(wl.Videos, first, watchLaterVideo), "oldest entry fell off")

	f.db.ConflictNext("watch_later", maxSaveAttempts)
	err = f.watchLater.RemoveFromWatchLater(ctx, u.ID, wl.Videos[0].Video)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestDispatchDueReminders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("ana")
	due := f.video("Due soon", 60)
	later := f.video("Much later", 60)
	now := time.Now().UTC()

	_, err := f.watchLater.AddToWatchLater(ctx, u.ID, due.ID, timePtr(now.Add(time.Hour)))
	require.NoError(t, err)
	_, err = f.watchLater.AddToWatchLater(ctx, u.ID, later.ID, timePtr(now.Add(48*time.Hour)))
	require.NoError(t, err)

	f.watchLater.now = func() time.Time { return now.Add(2 * time.Hour) }
	sent, err := f.watchLater.DispatchDueReminders(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	notifs := f.db.Notifications().For(u.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationSystem, notifs[0].Type)
	assert.Contains(t, notifs[0].Message, "Due soon")

	sent, err = f.watchLater.DispatchDueReminders(ctx, 100)
	require.NoError(t, err)
	assert.Zero(t, sent, "a reminder fires once")

	wl, err := f.db.WatchLater().GetWatchLater(ctx, u.ID)
	require.NoError(t, err)
	for _, e := range wl.Videos {
		if e.Video == later.ID {
			assert.NotNil(t, e.RemindAt)
		} else {
			assert.Nil(t, e.RemindAt)
		}
	}
}

func timePtr(t time.Time) *time.Time { return &t }
