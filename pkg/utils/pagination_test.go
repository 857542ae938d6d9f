package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	first := NewPagination(1, 10, 25)
	assert.Equal(t, 3, first.Pages)
	require.NotNil(t, first.Next)
	assert.Equal(t, PageRef{Page: 2, Limit: 10}, *first.Next)
	assert.Nil(t, first.Prev)

	last := NewPagination(3, 10, 25)
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Prev)
	assert.Equal(t, PageRef{Page: 2, Limit: 10}, *last.Prev)

	empty := NewPagination(1, 10, 0)
	assert.Zero(t, empty.Pages)
	assert.Nil(t, empty.Next)
	assert.Nil(t, empty.Prev)
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, DefaultPageSize},
		{"page=3&limit=20", 3, 20},
		{"page=-1&limit=0", 1, DefaultPageSize},
		{"page=abc&limit=1000", 1, MaxPageSize},
	}

	e := echo.New()
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		c := e.NewContext(req, httptest.NewRecorder())

		p := GetPaginationParams(c)
		assert.Equal(t, tt.wantPage, p.Page, tt.query)
		assert.Equal(t, tt.wantLimit, p.PageSize, tt.query)
		assert.Equal(t, (p.Page-1)*p.PageSize, p.Offset, tt.query)
	}
}

func TestParseSort(t *testing.T) {
	allowed := TimestampSortFields(map[string]string{"price": "price"})

	s, err := ParseSort("", allowed)
	require.NoError(t, err)
	assert.Equal(t, DefaultSort, s)

	s, err = ParseSort("price:asc", allowed)
	require.NoError(t, err)
	assert.Equal(t, SortSpec{Field: "price"}, s)

	s, err = ParseSort("-created_at", allowed)
	require.NoError(t, err)
	assert.Equal(t, SortSpec{Field: "createdAt", Desc: true}, s)

	s, err = ParseSort("price:desc", allowed)
	require.NoError(t, err)
	assert.True(t, s.Desc)

	_, err = ParseSort("password", allowed)
	assert.Error(t, err)
	_, err = ParseSort("price:sideways", allowed)
	assert.Error(t, err)
}
