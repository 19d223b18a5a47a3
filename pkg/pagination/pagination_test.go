package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlice(t *testing.T) {
	all := []int{1, 2, 3, 4, 5, 6, 7}

	page := Slice(all, &PaginationParams{Page: 2, PerPage: 3})
	assert.Equal(t, []int{4, 5, 6}, page.Items)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)

	last := Slice(all, &PaginationParams{Page: 3, PerPage: 3})
	assert.Equal(t, []int{7}, last.Items)
	assert.False(t, last.Pagination.HasNext)

	beyond := Slice(all, &PaginationParams{Page: 9, PerPage: 3})
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)
}

func TestSliceDefaults(t *testing.T) {
	page := Slice([]string{"a"}, nil)
	assert.Equal(t, 1, page.Pagination.CurrentPage)
	assert.Equal(t, 15, page.Pagination.PerPage)
	assert.Equal(t, int64(1), page.Pagination.Total)
}
