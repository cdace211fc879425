package services

import (
	"testing"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func videosOf(list []models.HistoryEntry) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(list))
	for i, e := range list {
		out[i] = e.Video
	}
	return out
}

func TestPushFrontCapsFromTail(t *testing.T) {
	var list []models.HistoryEntry
	ids := make([]primitive.ObjectID, 205)
	for i := range ids {
		ids[i] = primitive.NewObjectID()
		list = pushFront(list, models.HistoryEntry{Video: ids[i]}, models.HistoryCap)
	}

	assert.Len(t, list, models.HistoryCap)
	assert.Equal(t, ids[204], list[0].Video)
	assert.Equal(t, ids[5], list[len(list)-1].Video)
}

func TestMoveToFrontKeepsOthersInOrder(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	list := []models.HistoryEntry{{Video: c}, {Video: b}, {Video: a}}

	i := indexOf(list, a, historyVideo)
	assert.Equal(t, 2, i)

	moved := moveToFront(list, i, models.HistoryEntry{Video: a, PlaybackTimestamp: 42})
	assert.Equal(t, []primitive.ObjectID{a, c, b}, videosOf(moved))
	assert.Equal(t, 42.0, moved[0].PlaybackTimestamp)
	assert.Equal(t, []primitive.ObjectID{c, b, a}, videosOf(list), "input must not change")
}

func TestIndexOfMissing(t *testing.T) {
	list := []models.WatchLaterEntry{{Video: primitive.NewObjectID()}}
	assert.Equal(t, -1, indexOf(list, primitive.NewObjectID(), watchLaterVideo))
	assert.Equal(t, -1, indexOf(nil, primitive.NewObjectID(), watchLaterVideo))
}

func TestRemoveVideos(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	list := []models.HistoryEntry{{Video: a}, {Video: b}, {Video: c}}

	out, n := removeVideos(list, []primitive.ObjectID{c, a, primitive.NewObjectID()}, historyVideo)
	assert.Equal(t, 2, n)
	assert.Equal(t, []primitive.ObjectID{b}, videosOf(out))

	out, n = removeVideos(list, nil, historyVideo)
	assert.Zero(t, n)
	assert.Len(t, out, 3)
}

func TestWatchProgress(t *testing.T) {
	cases := []struct {
		ts, dur float64
		want    int
	}{
		{0, 0, 0},
		{30, 0, 0},
		{30, -1, 0},
		{0, 120, 0},
		{120, 120, 100},
		{500, 120, 100},
		{60, 120, 50},
		{1, 3, 33},
		{2, 3, 67},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, watchProgress(c.ts, c.dur), "ts=%v dur=%v", c.ts, c.dur)
	}
}
