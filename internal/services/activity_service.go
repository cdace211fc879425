package services

import (
	"context"
	"time"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/pkg/logger"
	"github.com/Dias221467/streamify/pkg/metrics"
	"github.com/Dias221467/streamify/pkg/middleware"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recorder appends user activity. Record returns an error only for an
// unknown activity type or entity kind; store failures are logged, counted
// and dropped so the caller's operation never fails because of them.
type Recorder interface {
	Record(ctx context.Context, user primitive.ObjectID, typ models.ActivityType, entity *models.EntityRef, metadata map[string]interface{}) error
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) Record(context.Context, primitive.ObjectID, models.ActivityType, *models.EntityRef, map[string]interface{}) error {
	return nil
}

const (
	DefaultSummaryWindowDays = 30
	MaxSummaryWindowDays     = 90
)

type ActivityService struct {
	repo     ActivityStore
	entities EntityResolver
	now      func() time.Time
}

func NewActivityService(repo ActivityStore, entities EntityResolver) *ActivityService {
	return &ActivityService{repo: repo, entities: entities, now: time.Now}
}

// Record logs a user activity. The session id comes from the request context.
func (s *ActivityService) Record(ctx context.Context, user primitive.ObjectID, typ models.ActivityType, entity *models.EntityRef, metadata map[string]interface{}) error {
	if !typ.Valid() {
		return apperrors.Validation("invalid activity type",
			apperrors.FieldError{Field: "type", Message: "must be one of the supported activity types"})
	}
	if entity != nil && !entity.Kind.Valid() {
		return apperrors.Validation("invalid entity type",
			apperrors.FieldError{Field: "entityType", Message: "must be one of Video, Comment, Tweet, User, Playlist"})
	}

	activity := &models.Activity{
		User:      user,
		Type:      typ,
		Entity:    entity,
		Metadata:  metadata,
		SessionID: middleware.SessionIDFromContext(ctx),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateActivity(ctx, activity); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"user_id": user.Hex(),
			"type":    typ,
		}).WithError(err).Warn("Failed to record activity")
		metrics.ActivitiesDropped.Inc()
		return nil
	}

	metrics.ActivitiesRecorded.WithLabelValues(string(typ)).Inc()
	return nil
}

// GetActivities returns one page of the user's activity, newest first, with
// each referenced entity resolved for display.
func (s *ActivityService) GetActivities(ctx context.Context, f models.ActivityFilter, page, limit int) (*models.Page[models.ActivityView], error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, apperrors.Validation("invalid activity type")
	}
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.EndDate.Before(f.StartDate) {
		return nil, apperrors.Validation("endDate must not be before startDate")
	}
	page, limit = NormalizePage(page, limit)

	activities, total, err := s.repo.FindActivities(ctx, f, page, limit)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch activities", err)
	}

	var refs []models.EntityRef
	for _, a := range activities {
		if a.Entity != nil {
			refs = append(refs, *a.Entity)
		}
	}
	resolved := map[models.EntityRef]models.EntitySummary{}
	if len(refs) > 0 {
		resolved, err = s.entities.ResolveEntities(ctx, refs)
		if err != nil {
			// The log is still useful without titles.
			logger.Log.WithError(err).Warn("Failed to resolve activity entities")
			resolved = map[models.EntityRef]models.EntitySummary{}
		}
	}

	views := make([]models.ActivityView, len(activities))
	for i, a := range activities {
		views[i] = models.ActivityView{Activity: a}
		if a.Entity != nil {
			if sum, ok := resolved[*a.Entity]; ok {
				sum := sum
				views[i].EntitySummary = &sum
			}
		}
	}
	p := models.NewPage(views, total, page, limit)
	return &p, nil
}

// ClampWindowDays applies the default and bounds for a summary window.
func ClampWindowDays(days int) int {
	switch {
	case days <= 0:
		return DefaultSummaryWindowDays
	case days > MaxSummaryWindowDays:
		return MaxSummaryWindowDays
	default:
		return days
	}
}

// GetSummary aggregates the user's activity over the last windowDays days.
func (s *ActivityService) GetSummary(ctx context.Context, user primitive.ObjectID, windowDays int) (*models.ActivitySummary, error) {
	windowDays = ClampWindowDays(windowDays)
	since := s.now().UTC().AddDate(0, 0, -windowDays)

	summary, err := s.repo.Summarize(ctx, user, since)
	if err != nil {
		return nil, apperrors.Internal("failed to summarize activities", err)
	}
	summary.WindowDays = windowDays
	return summary, nil
}

// Types lists the accepted activity types.
func (s *ActivityService) Types() []models.ActivityType {
	out := make([]models.ActivityType, len(models.ActivityTypes))
	copy(out, models.ActivityTypes)
	return out
}

func (s *ActivityService) DeleteActivity(ctx context.Context, user, id primitive.ObjectID) error {
	ok, err := s.repo.DeleteActivity(ctx, user, id)
	if err != nil {
		return apperrors.Internal("failed to delete activity", err)
	}
	if !ok {
		return apperrors.NotFound("activity not found")
	}
	return nil
}

// PurgeActivities hard-deletes the user's activity, optionally of one type only.
func (s *ActivityService) PurgeActivities(ctx context.Context, user primitive.ObjectID, typ models.ActivityType) (int64, error) {
	if typ != "" && !typ.Valid() {
		return 0, apperrors.Validation("invalid activity type")
	}
	n, err := s.repo.DeleteActivities(ctx, user, typ)
	if err != nil {
		return 0, apperrors.Internal("failed to purge activities", err)
	}
	return n, nil
}
