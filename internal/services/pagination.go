package services

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// NormalizePage clamps page to >= 1 and limit to [1, MaxPageLimit].
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}
