package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"mygames/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageResponse is the listing envelope used by every paginated endpoint.
type pageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int64 `json:"total_pages"`
}

func newPageResponse[T any](content []T, page, size int, total int64) pageResponse[T] {
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return pageResponse[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// parsePage reads 0-based `page` and `size` query params with sane bounds.
func parsePage(c *gin.Context) (page, size int, rp repository.Page) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	if page < 0 {
		page = 0
	}
	size, _ = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size, repository.Page{Offset: page * size, Limit: size}
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
