package client

import "testing"

func TestPager(t *testing.T) {
	tests := []struct {
		name             string
		p                Pager
		last             int
		canPrev, canNext bool
	}{
		{"empty", Pager{Page: 0, Size: 20, Total: 0}, 0, false, false},
		{"single page", Pager{Page: 0, Size: 20, Total: 20}, 0, false, false},
		{"two pages first", Pager{Page: 0, Size: 20, Total: 21}, 1, false, true},
		{"two pages last", Pager{Page: 1, Size: 20, Total: 21}, 1, true, false},
		{"zero size", Pager{Page: 0, Size: 0, Total: 5}, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.LastPage(); got != tt.last {
				t.Errorf("LastPage = %d, want %d", got, tt.last)
			}
			if got := tt.p.CanPrev(); got != tt.canPrev {
				t.Errorf("CanPrev = %v", got)
			}
			if got := tt.p.CanNext(); got != tt.canNext {
				t.Errorf("CanNext = %v", got)
			}
		})
	}
}

func TestPagerClamps(t *testing.T) {
	p := Pager{Page: 0, Size: 10, Total: 25}
	p = p.Next().Next().Next()
	if p.Page != 2 {
		t.Fatalf("Next should stop at last page, got %d", p.Page)
	}
	p = p.Prev().Prev().Prev()
	if p.Page != 0 {
		t.Fatalf("Prev should stop at 0, got %d", p.Page)
	}
	if q := p.Next().Query("far"); q.Search != "far" || q.Size != 10 || q.Page != 1 {
		t.Fatalf("Query = %+v", q)
	}
	p = Pager{Page: 2, Size: 10, Total: 25}.Search()
	if p.Page != 0 {
		t.Fatalf("new search should reset page, got %d", p.Page)
	}
	if q := p.Query("far"); q.Search != "far" || q.Size != 10 || q.Page != 0 {
		t.Fatalf("Query = %+v", q)
	}
}
