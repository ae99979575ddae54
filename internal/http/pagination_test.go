package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func pageContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x?"+query, nil)
	return c
}

func TestParsePageDefaults(t *testing.T) {
	page, size, rp := parsePage(pageContext(""))
	assert.Equal(t, 0, page)
	assert.Equal(t, 20, size)
	assert.Equal(t, 0, rp.Offset)
	assert.Equal(t, 20, rp.Limit)
}

func TestParsePageOffset(t *testing.T) {
	page, size, rp := parsePage(pageContext("page=2&size=10"))
	assert.Equal(t, 2, page)
	assert.Equal(t, 10, size)
	assert.Equal(t, 20, rp.Offset)
	assert.Equal(t, 10, rp.Limit)
}

func TestParsePageBounds(t *testing.T) {
	page, size, _ := parsePage(pageContext("page=-3&size=0"))
	assert.Equal(t, 0, page)
	assert.Equal(t, 20, size)

	_, size, _ = parsePage(pageContext("size=5000"))
	assert.Equal(t, 100, size)

	page, size, _ = parsePage(pageContext("page=abc&size=xyz"))
	assert.Equal(t, 0, page)
	assert.Equal(t, 20, size)
}

func TestPageResponseTotalPages(t *testing.T) {
	resp := newPageResponse([]int{1, 2, 3}, 0, 20, 41)
	assert.Equal(t, int64(41), resp.TotalElements)
	assert.Equal(t, int64(3), resp.TotalPages)

	exact := newPageResponse([]int{}, 0, 20, 40)
	assert.Equal(t, int64(2), exact.TotalPages)

	empty := newPageResponse([]int{}, 0, 20, 0)
	assert.Equal(t, int64(0), empty.TotalPages)
}
