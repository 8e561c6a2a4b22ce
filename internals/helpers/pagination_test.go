package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(95, 2, 20, 20)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, int64(95), p.Total)
	assert.Equal(t, 5, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
	assert.Equal(t, 20, p.Count)
}

func TestBuildPaginationEdges(t *testing.T) {
	// halaman terakhir
	p := BuildPagination(95, 5, 20, 15)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)

	// kosong
	p = BuildPagination(0, 1, 20, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)

	// input rusak dinormalisasi
	p = BuildPagination(10, 0, 0, 10)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}
