package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/critiq-labs/review-service/internal/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parsePage reads page/page_size query parameters into limit/offset form.
func parsePage(c *gin.Context) repositories.PageFilters {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(c.Query("page_size"))
	if err != nil || size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return repositories.PageFilters{
		Limit:  size,
		Offset: (page - 1) * size,
	}
}

// parseID reads a numeric path parameter; ok is false when it is not a
// positive integer.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
