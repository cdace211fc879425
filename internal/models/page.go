package models

// Page is the paginated list envelope the frontend expects.
type Page[T any] struct {
	Docs        []T   `json:"docs"`
	TotalDocs   int64 `json:"totalDocs"`
	Limit       int   `json:"limit"`
	Page        int   `json:"page"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPage builds a page from one slice of results and the total match count.
// page and limit are expected to be normalised (>= 1).
func NewPage[T any](docs []T, total int64, page, limit int) Page[T] {
	if docs == nil {
		docs = []T{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Page[T]{
		Docs:        docs,
		TotalDocs:   total,
		Limit:       limit,
		Page:        page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Paginate slices an in-memory list for the given page.
func Paginate[T any](all []T, page, limit int) Page[T] {
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return NewPage(all[start:end:end], int64(len(all)), page, limit)
}
