package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/pkg/logger"
	"github.com/Dias221467/streamify/pkg/metrics"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WatchLaterService struct {
	repo     WatchLaterStore
	videos   VideoStore
	queue    NotificationQueue
	recorder Recorder
	now      func() time.Time
}

func NewWatchLaterService(repo WatchLaterStore, videos VideoStore, queue NotificationQueue, recorder Recorder) *WatchLaterService {
	return &WatchLaterService{repo: repo, videos: videos, queue: queue, recorder: recorder, now: time.Now}
}

func (s *WatchLaterService) update(ctx context.Context, owner primitive.ObjectID, mutate func(*models.WatchLater) error) (*models.WatchLater, error) {
	return casUpdate(ctx, "watch_later",
		func() (*models.WatchLater, error) { return s.repo.GetWatchLater(ctx, owner) },
		func(wl *models.WatchLater) error { return s.repo.SaveWatchLater(ctx, wl) },
		mutate,
	)
}

func (s *WatchLaterService) checkRemindAt(remindAt *time.Time) error {
	if remindAt != nil && !remindAt.After(s.now()) {
		return apperrors.Validation("remindAt must be in the future",
			apperrors.FieldError{Field: "remindAt", Message: "must be in the future"})
	}
	return nil
}

// AddToWatchLater saves a video at the front of the list. A video can be
// saved once; adding it again is a conflict.
func (s *WatchLaterService) AddToWatchLater(ctx context.Context, owner, videoID primitive.ObjectID, remindAt *time.Time) (*models.WatchLaterItemView, error) {
	if err := s.checkRemindAt(remindAt); err != nil {
		return nil, err
	}
	video, err := loadVideo(ctx, s.videos, videoID)
	if err != nil {
		return nil, err
	}

	var entry models.WatchLaterEntry
	_, err = s.update(ctx, owner, func(wl *models.WatchLater) error {
		if indexOf(wl.Videos, videoID, watchLaterVideo) >= 0 {
			return apperrors.Conflict("video already in watch later")
		}
		entry = models.WatchLaterEntry{Video: videoID, AddedAt: s.now().UTC()}
		if remindAt != nil {
			t := remindAt.UTC()
			entry.RemindAt = &t
		}
		wl.Videos = pushFront(wl.Videos, entry, models.WatchLaterCap)
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.recorder.Record(ctx, owner, models.ActivityWatchLaterAdd, models.NewEntityRef(models.EntityVideo, videoID), nil)

	return &models.WatchLaterItemView{Video: video.Summary(), AddedAt: entry.AddedAt, RemindAt: entry.RemindAt}, nil
}

func (s *WatchLaterService) RemoveFromWatchLater(ctx context.Context, owner, videoID primitive.ObjectID) error {
	_, err := s.update(ctx, owner, func(wl *models.WatchLater) error {
		out, n := removeVideos(wl.Videos, []primitive.ObjectID{videoID}, watchLaterVideo)
		if n == 0 {
			return apperrors.NotFound("video not found in watch later")
		}
		wl.Videos = out
		return nil
	})
	if err != nil {
		return err
	}
	_ = s.recorder.Record(ctx, owner, models.ActivityWatchLaterRemove, models.NewEntityRef(models.EntityVideo, videoID), nil)
	return nil
}

// RemoveManyFromWatchLater removes any of videoIDs present and reports how many were.
func (s *WatchLaterService) RemoveManyFromWatchLater(ctx context.Context, owner primitive.ObjectID, videoIDs []primitive.ObjectID) (int, error) {
	var removed int
	_, err := s.update(ctx, owner, func(wl *models.WatchLater) error {
		out, n := removeVideos(wl.Videos, videoIDs, watchLaterVideo)
		removed = n
		if n == 0 {
			return errUnchanged
		}
		wl.Videos = out
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *WatchLaterService) ClearWatchLater(ctx context.Context, owner primitive.ObjectID) error {
	_, err := s.update(ctx, owner, func(wl *models.WatchLater) error {
		if len(wl.Videos) == 0 {
			return errUnchanged
		}
		wl.Videos = []models.WatchLaterEntry{}
		return nil
	})
	return err
}

// SetReminder sets or, with a nil remindAt, clears the reminder on one entry.
func (s *WatchLaterService) SetReminder(ctx context.Context, owner, videoID primitive.ObjectID, remindAt *time.Time) (*models.WatchLaterEntry, error) {
	if err := s.checkRemindAt(remindAt); err != nil {
		return nil, err
	}

	var entry models.WatchLaterEntry
	_, err := s.update(ctx, owner, func(wl *models.WatchLater) error {
		i := indexOf(wl.Videos, videoID, watchLaterVideo)
		if i < 0 {
			return apperrors.NotFound("video not found in watch later")
		}
		videos := make([]models.WatchLaterEntry, len(wl.Videos))
		copy(videos, wl.Videos)
		videos[i].RemindAt = nil
		if remindAt != nil {
			t := remindAt.UTC()
			videos[i].RemindAt = &t
		}
		wl.Videos = videos
		entry = videos[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ValidateQuery rejects unknown window and sort values.
func ValidateQuery(q models.WatchLaterQuery) error {
	switch q.Window {
	case "", models.WindowToday, models.WindowWeek, models.WindowMonth:
	default:
		return apperrors.Validation("invalid window",
			apperrors.FieldError{Field: "window", Message: "must be one of today, week, month"})
	}
	switch q.Sort {
	case "", models.SortRecent, models.SortOldest, models.SortTitle, models.SortDuration, models.SortViews:
	default:
		return apperrors.Validation("invalid sort",
			apperrors.FieldError{Field: "sort", Message: "must be one of recent, oldest, title, duration, views"})
	}
	return nil
}

func (s *WatchLaterService) windowStart(window string) time.Time {
	now := s.now().UTC()
	switch window {
	case models.WindowToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case models.WindowWeek:
		return now.AddDate(0, 0, -7)
	case models.WindowMonth:
		return now.AddDate(0, -1, 0)
	}
	return time.Time{}
}

// GetWatchLater returns the joined list filtered and sorted at read time.
// The stored order is never changed.
func (s *WatchLaterService) GetWatchLater(ctx context.Context, owner primitive.ObjectID, q models.WatchLaterQuery, page, limit int) (*models.Page[models.WatchLaterItemView], error) {
	if err := ValidateQuery(q); err != nil {
		return nil, err
	}
	page, limit = NormalizePage(page, limit)

	wl, err := s.repo.GetWatchLater(ctx, owner)
	if err != nil {
		return nil, apperrors.Internal("failed to load watch later list", err)
	}
	byID, err := videoIndex(ctx, s.videos, wl.Videos, watchLaterVideo)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	since := s.windowStart(q.Window)

	views := make([]models.WatchLaterItemView, 0, len(wl.Videos))
	for _, e := range wl.Videos {
		v, ok := byID[e.Video]
		if !ok {
			continue
		}
		if !since.IsZero() && e.AddedAt.Before(since) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(v.Title), search) &&
			!strings.Contains(strings.ToLower(v.Description), search) {
			continue
		}
		views = append(views, models.WatchLaterItemView{Video: v.Summary(), AddedAt: e.AddedAt, RemindAt: e.RemindAt})
	}

	sortWatchLater(views, q.Sort)
	p := models.Paginate(views, page, limit)
	return &p, nil
}

// sortWatchLater orders views in place; the stored order is newest first, so
// "recent" keeps it as is.
func sortWatchLater(views []models.WatchLaterItemView, key string) {
	switch key {
	case models.SortOldest:
		sort.SliceStable(views, func(i, j int) bool { return views[i].AddedAt.Before(views[j].AddedAt) })
	case models.SortTitle:
		sort.SliceStable(views, func(i, j int) bool {
			return strings.ToLower(views[i].Video.Title) < strings.ToLower(views[j].Video.Title)
		})
	case models.SortDuration:
		sort.SliceStable(views, func(i, j int) bool { return views[i].Video.Duration > views[j].Video.Duration })
	case models.SortViews:
		sort.SliceStable(views, func(i, j int) bool { return views[i].Video.Views > views[j].Video.Views })
	}
}

// DispatchDueReminders turns reminders that are due into system
// notifications. Each reminder is cleared before its notification is
// enqueued, so it fires at most once. Returns the number dispatched.
func (s *WatchLaterService) DispatchDueReminders(ctx context.Context, batch int) (int, error) {
	now := s.now().UTC()
	lists, err := s.repo.FindDueReminders(ctx, now, batch)
	if err != nil {
		return 0, apperrors.Internal("failed to find due reminders", err)
	}

	sent := 0
	for _, wl := range lists {
		for _, e := range wl.Videos {
			if e.RemindAt == nil || e.RemindAt.After(now) {
				continue
			}
			cleared, err := s.clearDueReminder(ctx, wl.Owner, e.Video, *e.RemindAt)
			if err != nil {
				logger.Log.WithFields(logrus.Fields{
					"owner": wl.Owner.Hex(),
					"video": e.Video.Hex(),
				}).WithError(err).Warn("Failed to clear due reminder")
				continue
			}
			if !cleared {
				continue
			}

			title := "a saved video"
			if v, err := s.videos.GetVideoByID(ctx, e.Video); err == nil && v.Title != "" {
				title = fmt.Sprintf("%q", v.Title)
			}
			s.queue.Enqueue(wl.Owner, wl.Owner, models.NotificationSystem,
				fmt.Sprintf("Reminder: watch %s from your Watch Later list", title))
			metrics.RemindersDispatched.Inc()
			sent++
		}
	}
	return sent, nil
}

// clearDueReminder clears the entry's reminder only if it still equals due,
// so a reminder rescheduled in the meantime is left alone.
func (s *WatchLaterService) clearDueReminder(ctx context.Context, owner, videoID primitive.ObjectID, due time.Time) (bool, error) {
	cleared := false
	_, err := s.update(ctx, owner, func(wl *models.WatchLater) error {
		cleared = false
		i := indexOf(wl.Videos, videoID, watchLaterVideo)
		if i < 0 || wl.Videos[i].RemindAt == nil || !wl.Videos[i].RemindAt.Equal(due) {
			return errUnchanged
		}
		videos := make([]models.WatchLaterEntry, len(wl.Videos))
		copy(videos, wl.Videos)
		videos[i].RemindAt = nil
		wl.Videos = videos
		cleared = true
		return nil
	})
	return cleared, err
}
