package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name      string
		number    int
		wantItems []int
		wantPage  int
		wantNext  bool
		wantPrev  bool
	}{
		{name: "first page", number: 1, wantItems: []int{1, 2, 3}, wantPage: 1, wantNext: true},
		{name: "middle page", number: 2, wantItems: []int{4, 5, 6}, wantPage: 2, wantNext: true, wantPrev: true},
		{name: "last partial page", number: 3, wantItems: []int{7}, wantPage: 3, wantPrev: true},
		{name: "past the end clamps to last", number: 9, wantItems: []int{7}, wantPage: 3, wantPrev: true},
		{name: "zero clamps to first", number: 0, wantItems: []int{1, 2, 3}, wantPage: 1, wantNext: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(items, tt.number, 3)
			assert.Equal(t, tt.wantItems, p.Items)
			assert.Equal(t, tt.wantPage, p.Number)
			assert.Equal(t, 7, p.Total)
			assert.Equal(t, 3, p.TotalPages)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.wantPrev, p.HasPrevious)
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]string{}, 4, 12)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
}
