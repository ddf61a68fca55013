package domain_test

import (
	"testing"

	"go-jobportal-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	items := make([]int, 10)

	t.Run("first page of 25 items", func(t *testing.T) {
		p := domain.NewPage(items, domain.PageRequest{Page: 0, Size: 10}, 25)
		assert.Len(t, p.Content, 10)
		assert.Equal(t, int64(25), p.TotalElements)
		assert.Equal(t, 3, p.TotalPages)
		assert.False(t, p.Last)
	})

	t.Run("last page of 25 items", func(t *testing.T) {
		p := domain.NewPage(items[:5], domain.PageRequest{Page: 2, Size: 10}, 25)
		assert.Len(t, p.Content, 5)
		assert.Equal(t, 3, p.TotalPages)
		assert.True(t, p.Last)
	})

	t.Run("empty result is last and has non-nil content", func(t *testing.T) {
		p := domain.NewPage[int](nil, domain.PageRequest{Page: 0, Size: 10}, 0)
		assert.NotNil(t, p.Content)
		assert.Equal(t, 0, p.TotalPages)
		assert.True(t, p.Last)
	})

	t.Run("exact multiple", func(t *testing.T) {
		p := domain.NewPage(items, domain.PageRequest{Page: 1, Size: 10}, 20)
		assert.Equal(t, 2, p.TotalPages)
		assert.True(t, p.Last)
	})
}

func TestParseSortDirection(t *testing.T) {
	assert.Equal(t, domain.SortDesc, domain.ParseSortDirection("desc"))
	assert.Equal(t, domain.SortDesc, domain.ParseSortDirection("DESC"))
	assert.Equal(t, domain.SortAsc, domain.ParseSortDirection("asc"))
	assert.Equal(t, domain.SortAsc, domain.ParseSortDirection("sideways"))
	assert.Equal(t, domain.SortAsc, domain.ParseSortDirection(""))
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, int64(30), domain.PageRequest{Page: 3, Size: 10}.Offset())
}
