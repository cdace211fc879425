package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/Dias221467/streamify/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Activities struct{ db *DB }

func (s *Activities) CreateActivity(_ context.Context, a *models.Activity) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("CreateActivity"); err != nil {
		return err
	}
	a.ID = primitive.NewObjectID()
	s.db.activities = append(s.db.activities, *a)
	return nil
}

// All returns a copy of every stored activity, oldest first.
func (s *Activities) All() []models.Activity {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]models.Activity, len(s.db.activities))
	copy(out, s.db.activities)
	return out
}

func matches(a models.Activity, f models.ActivityFilter) bool {
	if a.User != f.User {
		return false
	}
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if !f.StartDate.IsZero() && a.CreatedAt.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && a.CreatedAt.After(f.EndDate) {
		return false
	}
	return true
}

func (s *Activities) FindActivities(_ context.Context, f models.ActivityFilter, p, limit int) ([]models.Activity, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("FindActivities"); err != nil {
		return nil, 0, err
	}
	var out []models.Activity
	for i := len(s.db.activities) - 1; i >= 0; i-- {
		if matches(s.db.activities[i], f) {
			out = append(out, s.db.activities[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	docs, total := page(out, p, limit)
	return docs, total, nil
}

func (s *Activities) Summarize(_ context.Context, user primitive.ObjectID, since time.Time) (*models.ActivitySummary, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("Summarize"); err != nil {
		return nil, err
	}

	byType := map[models.ActivityType]*models.ActivityTypeCount{}
	byDay := map[string]int64{}
	var total int64
	for _, a := range s.db.activities {
		if a.User != user || a.CreatedAt.Before(since) {
			continue
		}
		total++
		tc, ok := byType[a.Type]
		if !ok {
			tc = &models.ActivityTypeCount{Type: a.Type}
			byType[a.Type] = tc
		}
		tc.Count++
		if a.CreatedAt.After(tc.Last) {
			tc.Last = a.CreatedAt
		}
		byDay[a.CreatedAt.UTC().Format("2006-01-02")]++
	}

	summary := &models.ActivitySummary{
		Total:  total,
		ByType: []models.ActivityTypeCount{},
		ByDay:  []models.ActivityDayCount{},
	}
	for _, tc := range byType {
		summary.ByType = append(summary.ByType, *tc)
	}
	sort.Slice(summary.ByType, func(i, j int) bool {
		a, b := summary.ByType[i], summary.ByType[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Type < b.Type
	})
	for day, n := range byDay {
		summary.ByDay = append(summary.ByDay, models.ActivityDayCount{Day: day, Count: n})
	}
	sort.Slice(summary.ByDay, func(i, j int) bool { return summary.ByDay[i].Day < summary.ByDay[j].Day })
	return summary, nil
}

func (s *Activities) DeleteActivity(_ context.Context, user, id primitive.ObjectID) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("DeleteActivity"); err != nil {
		return false, err
	}
	for i, a := range s.db.activities {
		if a.ID == id && a.User == user {
			s.db.activities = append(s.db.activities[:i], s.db.activities[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Activities) DeleteActivities(_ context.Context, user primitive.ObjectID, typ models.ActivityType) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("DeleteActivities"); err != nil {
		return 0, err
	}
	kept := s.db.activities[:0]
	var n int64
	for _, a := range s.db.activities {
		if a.User == user && (typ == "" || a.Type == typ) {
			n++
			continue
		}
		kept = append(kept, a)
	}
	s.db.activities = kept
	return n, nil
}

// Entities resolves entity references against the in-memory collections.
type Entities struct{ db *DB }

func (s *Entities) ResolveEntities(_ context.Context, refs []models.EntityRef) (map[models.EntityRef]models.EntitySummary, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("ResolveEntities"); err != nil {
		return nil, err
	}
	out := map[models.EntityRef]models.EntitySummary{}
	for _, ref := range refs {
		var title string
		found := false
		switch ref.Kind {
		case models.EntityVideo:
			v, ok := s.db.videos[ref.ID]
			title, found = v.Title, ok
		case models.EntityTweet:
			t, ok := s.db.tweets[ref.ID]
			title, found = t.Content, ok
		case models.EntityUser:
			u, ok := s.db.users[ref.ID]
			title, found = u.Username, ok
		case models.EntityComment:
			for _, c := range s.db.comments {
				if c.ID == ref.ID {
					title, found = c.Content, true
				}
			}
		}
		if found {
			out[ref] = models.EntitySummary{Kind: ref.Kind, ID: ref.ID, Title: title}
		}
	}
	return out, nil
}
