package service

import "math"

const (
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps Offset within int.
	MaxPage = math.MaxInt / MaxLimit
)

// Page is a clamped page request: Page >= 1 and Limit in [1, MaxLimit].
type Page struct {
	Page  int
	Limit int
}

// NewPage clamps the raw query values. A zero limit means "not supplied".
func NewPage(page, limit int) Page {
	switch {
	case page <= 0:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 1:
		limit = 1
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PageResult[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

func newPageResult[T any](items []T, p Page, total int64) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{Items: items, Page: p.Page, Limit: p.Limit, Total: total}
}
