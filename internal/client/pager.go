package client

import "github.com/diewo77/stockchef/internal/models"

// Pager derives navigation state from a paged answer. Page is zero-based.
type Pager struct {
	Page  int
	Size  int
	Total int64
}

// LastPage is max(ceil(total/size)-1, 0).
func (p Pager) LastPage() int {
	if p.Size <= 0 || p.Total <= 0 {
		return 0
	}
	last := int((p.Total+int64(p.Size)-1)/int64(p.Size)) - 1
	if last < 0 {
		return 0
	}
	return last
}

func (p Pager) CanPrev() bool { return p.Page > 0 }

func (p Pager) CanNext() bool { return p.Page < p.LastPage() }

// Next moves forward, stopping at the last page.
func (p Pager) Next() Pager {
	if p.CanNext() {
		p.Page++
	}
	return p
}

// Prev moves back, stopping at page 0.
func (p Pager) Prev() Pager {
	if p.CanPrev() {
		p.Page--
	}
	return p
}

// Query returns the request for the current page.
func (p Pager) Query(search string) PageQuery {
	return PageQuery{Page: p.Page, Size: p.Size, Search: search}
}

// Search starts a new search; the page goes back to 0.
func (p Pager) Search() Pager {
	p.Page = 0
	return p
}

// PagerFor builds a pager from an answer.
func PagerFor[T any](page models.Page[T]) Pager {
	return Pager{Page: page.Page, Size: page.Size, Total: page.TotalElements}
}
