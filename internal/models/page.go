package models

// Page is the canonical paged list shape. Page is zero-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageQuery selects one page of a list, optionally filtered by a search
// term. Page is zero-based.
type PageQuery struct {
	Page   int
	Size   int
	Search string
}

// Normalize clamps the page to >= 0 and the size to 1..MaxPageSize,
// defaulting to DefaultPageSize.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
	return q
}

// Offset is the number of rows before the page.
func (q PageQuery) Offset() int { return q.Page * q.Size }
