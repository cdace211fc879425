package services

import (
	"math"

	"github.com/Dias221467/streamify/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Per-user lists are embedded arrays kept newest first. These helpers never
// mutate the slice they are given.

func historyVideo(e models.HistoryEntry) primitive.ObjectID { return e.Video }
func watchLaterVideo(e models.WatchLaterEntry) primitive.ObjectID { return e.Video }

// indexOf returns the position of the entry for video, or -1.
func indexOf[E any](list []E, video primitive.ObjectID, key func(E) primitive.ObjectID) int {
	for i := range list {
		if key(list[i]) == video {
			return i
		}
	}
	return -1
}

// pushFront returns e followed by list, truncated from the tail to limit entries.
func pushFront[E any](list []E, e E, limit int) []E {
	n := len(list) + 1
	if n > limit {
		n = limit
	}
	out := make([]E, 0, n)
	out = append(out, e)
	return append(out, list[:n-1]...)
}

// moveToFront returns list with the entry at i replaced by e and moved to index 0.
func moveToFront[E any](list []E, i int, e E) []E {
	out := make([]E, 0, len(list))
	out = append(out, e)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// removeVideos returns list without the entries for any of videos and how many were dropped.
func removeVideos[E any](list []E, videos []primitive.ObjectID, key func(E) primitive.ObjectID) ([]E, int) {
	drop := make(map[primitive.ObjectID]struct{}, len(videos))
	for _, v := range videos {
		drop[v] = struct{}{}
	}
	out := make([]E, 0, len(list))
	for _, e := range list {
		if _, ok := drop[key(e)]; !ok {
			out = append(out, e)
		}
	}
	return out, len(list) - len(out)
}

// watchProgress is the percentage watched, rounded and clamped to [0, 100].
// An unknown or zero duration yields 0.
func watchProgress(timestamp, duration float64) int {
	if duration <= 0 || timestamp <= 0 {
		return 0
	}
	p := timestamp / duration * 100
	if p > 100 {
		p = 100
	}
	return int(math.Round(p))
}
