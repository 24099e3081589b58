package store

import "github.com/linkshelfapp/linkshelf-server/internal/domain"

// Sort identifies a bookmark list ordering.
type Sort string

// Supported bookmark orderings.
const (
	// SortDateDesc is newest first. When a full-text term is present the
	// order becomes relevance first with recency as the tiebreak.
	SortDateDesc  Sort = "date-desc"
	SortDateAsc   Sort = "date-asc"
	SortAlphaAsc  Sort = "alpha-asc"
	SortAlphaDesc Sort = "alpha-desc"
	// SortVisited is most-visited first, recency as tiebreak.
	SortVisited Sort = "visited"
)

// Normalize coerces unknown values to the default ordering.
func (s Sort) Normalize() Sort {
	switch s {
	case SortDateAsc, SortAlphaAsc, SortAlphaDesc, SortVisited:
		return s
	default:
		return SortDateDesc
	}
}

// Pagination bounds.
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// ListQuery is the structured descriptor for a bookmark listing. The
// store compiles it into its own query form; callers never pass SQL.
type ListQuery struct {
	// Search is free-form text matched across the full-text index,
	// collection names, tag names, and heuristic date fragments.
	Search string
	// Tags filters to bookmarks carrying any of the given exact
	// (normalized) tag names.
	Tags []string
	// CollectionID filters to a single collection when set.
	CollectionID string
	Sort         Sort
	Limit        int
	Offset       int
}

// Normalize clamps pagination and coerces the sort order in place.
func (q *ListQuery) Normalize() {
	q.Sort = q.Sort.Normalize()
	if q.Limit <= 0 {
		q.Limit = DefaultListLimit
	}
	if q.Limit > MaxListLimit {
		q.Limit = MaxListLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// BookmarkPage is one page of a bookmark listing.
//
// Total is the user's overall bookmark count, not the filtered match
// count: a filtered page can report total far above the rows returned.
// Long-standing client-visible behavior, kept intentionally.
type BookmarkPage struct {
	Bookmarks []*domain.Bookmark `json:"bookmarks"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}
