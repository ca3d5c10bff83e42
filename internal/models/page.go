package models

import "math"

// PageRequest is a validated 1-based page request.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip. It saturates at math.MaxInt
// instead of overflowing, so a huge page reads as past the end.
func (p PageRequest) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Page is one slice of a sorted listing plus the totals needed to walk it.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
}

// NewPage builds a Page. A nil items slice becomes empty so it serializes
// to [] rather than null.
func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	var pages int64
	if req.Limit > 0 {
		pages = (total + int64(req.Limit) - 1) / int64(req.Limit)
	}
	return Page[T]{
		Items:      items,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalItems: total,
		TotalPages: pages,
	}
}
