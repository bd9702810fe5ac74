package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func pageParamsFor(rawQuery string) (int, int) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return pageParams(c)
}

func TestPageParams(t *testing.T) {
	page, limit := pageParamsFor("")
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, limit)

	page, limit = pageParamsFor("page=3&limit=25")
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)

	// Garbage and out-of-range values fall back to the defaults.
	page, limit = pageParamsFor("page=abc&limit=-5")
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, limit)

	_, limit = pageParamsFor("limit=5000")
	assert.Equal(t, maxPageSize, limit)
}

func TestNewPaginatedResponse(t *testing.T) {
	response := NewPaginatedResponse([]string{"a", "b"}, 21, 2, 10)
	assert.Equal(t, 2, response.Meta.CurrentPage)
	assert.Equal(t, 10, response.Meta.PageSize)
	assert.EqualValues(t, 21, response.Meta.TotalItems)
	assert.Equal(t, 3, response.Meta.TotalPages)

	response = NewPaginatedResponse([]string{}, 0, 1, 10)
	assert.Equal(t, 0, response.Meta.TotalPages)
	assert.Empty(t, response.Data)
}
