package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"valid values", 3, 25, 3, 25},
		{"zero values default", 0, 0, 1, 10},
		{"negative values default", -2, -5, 1, 10},
		{"page only defaulted", 0, 5, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizePage(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestPaginateWindows(t *testing.T) {
	t.Parallel()

	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	// total=23, limit=10 cuts into windows of 10, 10 and 3.
	for page, wantLen := range map[int]int{1: 10, 2: 10, 3: 3} {
		docs, meta := New[int]().Paginate(NormalizePage(page, 10)).Run(items)
		assert.Len(t, docs, wantLen, "page %d", page)
		assert.Equal(t, 23, meta.TotalDocs)
		assert.Equal(t, 3, meta.TotalPages)
		assert.Equal(t, page, meta.Page)
		assert.Equal(t, page < 3, meta.HasNextPage, "page %d", page)
		assert.Equal(t, page > 1, meta.HasPrevPage, "page %d", page)
	}

	// First item of page 2 follows the last item of page 1.
	docs, _ := New[int]().Paginate(NormalizePage(2, 10)).Run(items)
	assert.Equal(t, 10, docs[0])
}

func TestPaginateOutOfRange(t *testing.T) {
	t.Parallel()

	items := make([]int, 23)
	docs, meta := New[int]().Paginate(NormalizePage(4, 10)).Run(items)

	assert.Empty(t, docs)
	assert.Equal(t, 23, meta.TotalDocs)
	assert.Equal(t, 3, meta.TotalPages)
	assert.False(t, meta.HasNextPage)
	assert.True(t, meta.HasPrevPage)
}

func TestPaginateEmptySet(t *testing.T) {
	t.Parallel()

	docs, meta := New[int]().Paginate(NormalizePage(1, 10)).Run(nil)

	assert.Empty(t, docs)
	assert.Equal(t, 0, meta.TotalDocs)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNextPage)
	assert.False(t, meta.HasPrevPage)
}
