package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("repository: document not found")
	// ErrDuplicate is returned when an insert hits a unique index.
	ErrDuplicate = errors.New("repository: duplicate key")
	// ErrVersionConflict is returned when a compare-and-swap save lost to a concurrent writer.
	ErrVersionConflict = errors.New("repository: version conflict")
)

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

// normalizePage clamps pagination input to sane bounds.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func skipFor(page, limit int) int64 {
	return int64((page - 1) * limit)
}
