package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2, 3}, 23, 2, 10)

	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)

	empty := NewPage[int](nil, 0, 1, 10)
	assert.NotNil(t, empty.Docs)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNextPage)
}

func TestPaginate(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{3, 4}, Paginate(all, 2, 2).Docs)
	assert.Equal(t, []int{5}, Paginate(all, 3, 2).Docs)
	assert.Empty(t, Paginate(all, 9, 2).Docs)
	assert.Equal(t, int64(5), Paginate(all, 9, 2).TotalDocs)
}
