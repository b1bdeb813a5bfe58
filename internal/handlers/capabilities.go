package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/critiq-labs/review-service/internal/models"
)

// Capabilities enumerates which detail operations a resource kind supports.
// Unsupported verbs get explicit denial handlers instead of falling through
// to a 404.
type Capabilities struct {
	Retrieve      bool
	PartialUpdate bool
}

var (
	// categories and genres are append-only reference data: list, create,
	// delete by slug, nothing else
	categoryCapabilities = Capabilities{}
	genreCapabilities    = Capabilities{}

	titleCapabilities = Capabilities{Retrieve: true, PartialUpdate: true}
)

// NotSupported answers verbs a resource kind does not implement.
func (h *BaseHandler) NotSupported(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{
		Message: "operation not supported for this resource",
	})
}
