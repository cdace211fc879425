package services

import (
	"context"
	"errors"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/internal/repository"
	"github.com/Dias221467/streamify/pkg/logger"
	"github.com/Dias221467/streamify/pkg/metrics"
)

const maxSaveAttempts = 5

// errUnchanged tells casUpdate the mutation was a no-op and nothing needs saving.
var errUnchanged = errors.New("list unchanged")

// casUpdate loads a list document, applies mutate and saves it with a
// version check, reloading and reapplying after a lost race. mutate must be
// safe to run more than once.
func casUpdate[D any](ctx context.Context, list string, load func() (D, error), save func(D) error, mutate func(D) error) (D, error) {
	var zero D
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		doc, err := load()
		if err != nil {
			return zero, apperrors.Internal("failed to load "+list, err)
		}
		if err := mutate(doc); err != nil {
			if errors.Is(err, errUnchanged) {
				return doc, nil
			}
			return zero, err
		}

		err = save(doc)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return zero, apperrors.Internal("failed to save "+list, err)
		}
		metrics.ListSaveConflicts.WithLabelValues(list).Inc()
		logger.Log.WithField("list", list).WithField("attempt", attempt).Debug("Concurrent list update, retrying")
	}
	return zero, apperrors.Conflict(list + " was modified concurrently, please retry")
}
