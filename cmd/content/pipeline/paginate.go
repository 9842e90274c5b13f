package pipeline

import (
	"VidTube.com/pkg/errno"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// NewWindow normalizes paging input: page below 1 becomes 1, a zero limit
// becomes DefaultLimit and limits above MaxLimit are clamped. A negative
// limit is rejected.
func NewWindow(page, limit int) (Window, error) {
	if limit < 0 {
		return Window{}, errno.ParamErr.WithMessage("limit must be greater than 0")
	}
	if page < 1 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Window{Page: page, Limit: limit}, nil
}

func (w Window) Offset() int {
	return (w.Page - 1) * w.Limit
}

// Page is the listing envelope returned by every feed.
type Page[T any] struct {
	Results    []T   `json:"results"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
}

func TotalPages(total int64, limit int) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}

// NewPage wraps rows already windowed by the store.
func NewPage[T any](rows []T, w Window, total int64) *Page[T] {
	if rows == nil {
		rows = []T{}
	}
	return &Page[T]{
		Results:    rows,
		Page:       w.Page,
		Limit:      w.Limit,
		TotalItems: total,
		TotalPages: TotalPages(total, w.Limit),
	}
}

// SlicePage windows a fully materialized, already ordered result.
func SlicePage[T any](all []T, w Window) *Page[T] {
	total := int64(len(all))
	start := w.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + w.Limit
	if end > len(all) {
		end = len(all)
	}
	return NewPage(append([]T(nil), all[start:end]...), w, total)
}
