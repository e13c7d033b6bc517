package api

import "testing"

func TestNewPage(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		size      int
		total     int64
		wantPages int
		wantFirst bool
		wantLast  bool
	}{
		{"empty", 0, 20, 0, 0, true, true},
		{"single page", 0, 20, 5, 1, true, true},
		{"first of three", 0, 10, 25, 3, true, false},
		{"middle", 1, 10, 25, 3, false, false},
		{"last", 2, 10, 25, 3, false, true},
		{"exact multiple", 1, 10, 20, 2, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage[int](nil, tt.page, tt.size, tt.total)
			if p.TotalPages != tt.wantPages || p.First != tt.wantFirst || p.Last != tt.wantLast {
				t.Errorf("got pages=%d first=%v last=%v", p.TotalPages, p.First, p.Last)
			}
			if p.Content == nil {
				t.Error("content must encode as [] not null")
			}
		})
	}
}
