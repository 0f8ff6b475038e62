// Package pagination slices ordered result sets into fixed-size pages.
package pagination

import "errors"

// ErrInvalidPageSize is returned by New for a non-positive page size. It is a
// configuration error surfaced once at startup, never per request.
var ErrInvalidPageSize = errors.New("pagination: page size must be positive")

// Paginator computes fixed-size page windows over ordered sequences. The page
// size is process-wide configuration, validated once when the Paginator is
// constructed.
type Paginator struct {
	pageSize int
}

// New returns a Paginator for the given page size.
func New(pageSize int) (*Paginator, error) {
	if pageSize < 1 {
		return nil, ErrInvalidPageSize
	}
	return &Paginator{pageSize: pageSize}, nil
}

// PageSize returns the configured page size.
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// Window describes one page of an ordered sequence. Pages are 1-indexed;
// requests out of range clamp to the nearest valid page instead of failing.
// An empty sequence yields a single empty page (page 1 of 1).
type Window struct {
	Page       int   `json:"page"`
	Offset     int   `json:"-"`
	Limit      int   `json:"-"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Window computes the clamped page window for the requested 1-indexed page
// over a sequence of total items. Callers run the resulting Offset/Limit
// against the already-ordered query.
func (p *Paginator) Window(total int64, page int) Window {
	totalPages := int((total + int64(p.pageSize) - 1) / int64(p.pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return Window{
		Page:       page,
		Offset:     (page - 1) * p.pageSize,
		Limit:      p.pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Slice paginates an in-memory ordered sequence with the same clamping rules
// as Window.
func Slice[T any](p *Paginator, items []T, page int) ([]T, Window) {
	w := p.Window(int64(len(items)), page)

	end := w.Offset + w.Limit
	if end > len(items) {
		end = len(items)
	}
	if w.Offset >= len(items) {
		return []T{}, w
	}
	return items[w.Offset:end], w
}
