package services

import (
	"context"
	"errors"
	"time"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HistoryService struct {
	repo     HistoryStore
	videos   VideoStore
	recorder Recorder
	now      func() time.Time
}

func NewHistoryService(repo HistoryStore, videos VideoStore, recorder Recorder) *HistoryService {
	return &HistoryService{repo: repo, videos: videos, recorder: recorder, now: time.Now}
}

// WatchInput is the optional playback state sent with a watch event.
type WatchInput struct {
	PlaybackTimestamp *float64
	VideoDuration     *float64
}

func (s *HistoryService) update(ctx context.Context, user primitive.ObjectID, mutate func(*models.History) error) (*models.History, error) {
	return casUpdate(ctx, "history",
		func() (*models.History, error) { return s.repo.GetHistory(ctx, user) },
		func(h *models.History) error { return s.repo.SaveHistory(ctx, h) },
		mutate,
	)
}

func loadVideo(ctx context.Context, videos VideoStore, id primitive.ObjectID) (*models.Video, error) {
	video, err := videos.GetVideoByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("video not found")
		}
		return nil, apperrors.Internal("failed to load video", err)
	}
	return video, nil
}

// AddToHistory records a watch. A video already in the history moves to the
// front with its playback state updated; otherwise a new entry is inserted
// and the oldest entries beyond the cap fall off.
func (s *HistoryService) AddToHistory(ctx context.Context, user, videoID primitive.ObjectID, in WatchInput) (*models.HistoryItemView, error) {
	if in.PlaybackTimestamp != nil && *in.PlaybackTimestamp < 0 {
		return nil, apperrors.Validation("playbackTimestamp must not be negative")
	}
	if in.VideoDuration != nil && *in.VideoDuration < 0 {
		return nil, apperrors.Validation("videoDuration must not be negative")
	}
	video, err := loadVideo(ctx, s.videos, videoID)
	if err != nil {
		return nil, err
	}

	var entry models.HistoryEntry
	_, err = s.update(ctx, user, func(h *models.History) error {
		entry = models.HistoryEntry{
			Video:         videoID,
			WatchedAt:     s.now().UTC(),
			VideoDuration: video.Duration,
		}
		if in.VideoDuration != nil {
			entry.VideoDuration = *in.VideoDuration
		}

		i := indexOf(h.Videos, videoID, historyVideo)
		if i >= 0 {
			entry.PlaybackTimestamp = h.Videos[i].PlaybackTimestamp
		}
		if in.PlaybackTimestamp != nil {
			entry.PlaybackTimestamp = *in.PlaybackTimestamp
		}

		if i >= 0 {
			h.Videos = moveToFront(h.Videos, i, entry)
		} else {
			h.Videos = pushFront(h.Videos, entry, models.HistoryCap)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.recorder.Record(ctx, user, models.ActivityVideoWatch, models.NewEntityRef(models.EntityVideo, videoID),
		map[string]interface{}{"playbackTimestamp": entry.PlaybackTimestamp})

	return &models.HistoryItemView{
		Video:             video.Summary(),
		WatchedAt:         entry.WatchedAt,
		PlaybackTimestamp: entry.PlaybackTimestamp,
		VideoDuration:     entry.VideoDuration,
		Progress:          watchProgress(entry.PlaybackTimestamp, entry.VideoDuration),
	}, nil
}

// GetHistory pages the joined history view. Entries whose video was deleted are skipped.
func (s *HistoryService) GetHistory(ctx context.Context, user primitive.ObjectID, page, limit int) (*models.Page[models.HistoryItemView], error) {
	page, limit = NormalizePage(page, limit)

	h, err := s.repo.GetHistory(ctx, user)
	if err != nil {
		return nil, apperrors.Internal("failed to load history", err)
	}
	byID, err := videoIndex(ctx, s.videos, h.Videos, historyVideo)
	if err != nil {
		return nil, err
	}

	views := make([]models.HistoryItemView, 0, len(h.Videos))
	for _, e := range h.Videos {
		v, ok := byID[e.Video]
		if !ok {
			continue
		}
		views = append(views, models.HistoryItemView{
			Video:             v.Summary(),
			WatchedAt:         e.WatchedAt,
			PlaybackTimestamp: e.PlaybackTimestamp,
			VideoDuration:     e.VideoDuration,
			Progress:          watchProgress(e.PlaybackTimestamp, e.VideoDuration),
		})
	}
	p := models.Paginate(views, page, limit)
	return &p, nil
}

// videoIndex fetches the videos referenced by a list in one query.
func videoIndex[E any](ctx context.Context, videos VideoStore, list []E, key func(E) primitive.ObjectID) (map[primitive.ObjectID]*models.Video, error) {
	ids := make([]primitive.ObjectID, len(list))
	for i, e := range list {
		ids[i] = key(e)
	}
	found, err := videos.GetVideosByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal("failed to load videos", err)
	}
	byID := make(map[primitive.ObjectID]*models.Video, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	return byID, nil
}

func (s *HistoryService) RemoveFromHistory(ctx context.Context, user, videoID primitive.ObjectID) error {
	_, err := s.update(ctx, user, func(h *models.History) error {
		out, n := removeVideos(h.Videos, []primitive.ObjectID{videoID}, historyVideo)
		if n == 0 {
			return apperrors.NotFound("video not found in history")
		}
		h.Videos = out
		return nil
	})
	return err
}

// RemoveManyFromHistory removes any of videoIDs present and reports how many were.
func (s *HistoryService) RemoveManyFromHistory(ctx context.Context, user primitive.ObjectID, videoIDs []primitive.ObjectID) (int, error) {
	var removed int
	_, err := s.update(ctx, user, func(h *models.History) error {
		out, n := removeVideos(h.Videos, videoIDs, historyVideo)
		removed = n
		if n == 0 {
			return errUnchanged
		}
		h.Videos = out
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// ClearHistory empties the list. Clearing an empty history is a no-op.
func (s *HistoryService) ClearHistory(ctx context.Context, user primitive.ObjectID) error {
	_, err := s.update(ctx, user, func(h *models.History) error {
		if len(h.Videos) == 0 {
			return errUnchanged
		}
		h.Videos = []models.HistoryEntry{}
		return nil
	})
	return err
}
