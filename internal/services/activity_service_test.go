package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/pkg/metrics"
	"github.com/Dias221467/streamify/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRecordValidatesEnums(t *testing.T) {
	f := newFixture(t)
	u := f.user("ana")

	err := f.activity.Record(context.Background(), u.ID, models.ActivityType("video_rewind"), nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = f.activity.Record(context.Background(), u.ID, models.ActivityVideoLike,
		&models.EntityRef{Kind: "Podcast", ID: primitive.NewObjectID()}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.Empty(t, f.db.Activities().All())
}

func TestRecordSwallowsStoreErrors(t *testing.T) {
	f := newFixture(t)
	f.db.Fail("CreateActivity", errors.New("disk full"))
	before := testutil.ToFloat64(metrics.ActivitiesDropped)

	err := f.activity.Record(context.Background(), primitive.NewObjectID(), models.ActivityVideoUpload, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ActivitiesDropped))
}

func TestRecordCapturesSession(t *testing.T) {
	f := newFixture(t)
	ctx := middleware.WithSessionID(context.Background(), "tab-7")
	u := f.user("ana")

	require.NoError(t, f.activity.Record(ctx, u.ID, models.ActivityPlaylistCreate, nil, map[string]interface{}{"name": "mix"}))

	all := f.db.Activities().All()
	require.Len(t, all, 1)
	assert.Equal(t, "tab-7", all[0].SessionID)
	assert.Equal(t, "mix", all[0].Metadata["name"])
	assert.False(t, all[0].ID.IsZero())
}

func TestGetActivitiesResolvesEntities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("ana")
	kept := f.video("Kept video", 60)
	gone := f.video("Gone video", 60)

	require.NoError(t, f.activity.Record(ctx, u.ID, models.ActivityVideoLike, models.NewEntityRef(models.EntityVideo, kept.ID), nil))
	require.NoError(t, f.activity.Record(ctx, u.ID, models.ActivityVideoLike, models.NewEntityRef(models.EntityVideo, gone.ID), nil))
	require.NoError(t, f.activity.Record(ctx, u.ID, models.ActivityTweetCreate, nil, nil))
	require.NoError(t, f.activity.Record(ctx, primitive.NewObjectID(), models.ActivityTweetCreate, nil, nil))
	f.db.DeleteVideo(gone.ID)

	p, err := f.activity.GetActivities(ctx, models.ActivityFilter{User: u.ID}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.TotalDocs)

	var titles []string
	for _, v := range p.Docs {
		if v.EntitySummary != nil {
			titles = append(titles, v.EntitySummary.Title)
		}
	}
	assert.Equal(t, []string{"Kept video"}, titles)

	liked, err := f.activity.GetActivities(ctx, models.ActivityFilter{User: u.ID, Type: models.ActivityVideoLike}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), liked.TotalDocs)
}

func TestGetActivitiesToleratesResolverFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("ana")
	v := f.video("v", 1)
	require.NoError(t, f.activity.Record(ctx, u.ID, models.ActivityVideoWatch, models.NewEntityRef(models.EntityVideo, v.ID), nil))
	f.db.Fail("ResolveEntities", errors.New("timeout"))

	p, err := f.activity.GetActivities(ctx, models.ActivityFilter{User: u.ID}, 1, 10)
	require.NoError(t, err)
	require.Len(t, p.Docs, 1)
	assert.Nil(t, p.Docs[0].EntitySummary)
}

func TestGetActivitiesRejectsBadFilter(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	_, err := f.activity.GetActivities(context.Background(), models.ActivityFilter{Type: "nope"}, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.activity.GetActivities(context.Background(), models.ActivityFilter{StartDate: now, EndDate: now.Add(-time.Hour)}, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestClampWindowDays(t *testing.T) {
	assert.Equal(t, 30, ClampWindowDays(0))
	assert.Equal(t, 30, ClampWindowDays(-4))
	assert.Equal(t, 1, ClampWindowDays(1))
	assert.Equal(t, 90, ClampWindowDays(365))
}

func TestGetSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("ana")
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	at := func(ts time.Time) {
		f.activity.now = func() time.Time { return ts }
	}
	at(now.AddDate(0, 0, -40))
	require.NoError(t, f.activity.Record(ctx, u.ID, models.ActivityVideoWatch, nil, nil))
	at(now.AddDate(0, 0, -2))
	require.NoError(t, f.activity.Record(ctx, u.ID, models.ActivityVideoWatch, nil, nil))
	require.NoError(t, f.activity.Record(ctx, u.ID, models.ActivityFollow, nil, nil))
	at(now.Add(-time.Hour))
	require.NoError(t, f.activity.Record(ctx, u.ID, models.ActivityVideoWatch, nil, nil))
	at(now)

	s, err := f.activity.GetSummary(ctx, u.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, s.WindowDays)
	assert.Equal(t, int64(3), s.Total)
	require.Len(t, s.ByType, 2)
	assert.Equal(t, models.ActivityVideoWatch, s.ByType[0].Type)
	assert.Equal(t, int64(2), s.ByType[0].Count)
	assert.True(t, s.ByType[0].Last.Equal(now.Add(-time.Hour)))
	assert.Equal(t, []models.ActivityDayCount{{Day: "2024-03-08", Count: 2}, {Day: "2024-03-10", Count: 1}}, s.ByDay)

	empty, err := f.activity.GetSummary(ctx, primitive.NewObjectID(), 7)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.NotNil(t, empty.ByType)
	assert.Empty(t, empty.ByDay)
}

func TestDeleteAndPurgeActivities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, other := f.user("ana"), f.user("bob")
	for _, typ := range []models.ActivityType{models.ActivityVideoWatch, models.ActivityVideoWatch, models.ActivityFollow} {
		require.NoError(t, f.activity.Record(ctx, u.ID, typ, nil, nil))
	}
	require.NoError(t, f.activity.Record(ctx, other.ID, models.ActivityFollow, nil, nil))

	first := f.db.Activities().All()[0]
	assert.ErrorIs(t, f.activity.DeleteActivity(ctx, other.ID, first.ID), apperrors.ErrNotFound)
	require.NoError(t, f.activity.DeleteActivity(ctx, u.ID, first.ID))
	assert.ErrorIs(t, f.activity.DeleteActivity(ctx, u.ID, first.ID), apperrors.ErrNotFound)

	n, err := f.activity.PurgeActivities(ctx, u.ID, models.ActivityFollow)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = f.activity.PurgeActivities(ctx, u.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Len(t, f.db.Activities().All(), 1, "other users keep their log")

	_, err = f.activity.PurgeActivities(ctx, u.ID, "bogus")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTypesIsACopy(t *testing.T) {
	f := newFixture(t)
	types := f.activity.Types()
	require.Len(t, types, 16)
	types[0] = "mutated"
	assert.Equal(t, models.ActivityVideoUpload, f.activity.Types()[0])
}
