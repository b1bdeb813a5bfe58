package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/services"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

// BaseHandler carries the shared handler plumbing.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) log(c *gin.Context) utils.Logger {
	return utils.LoggerFromContext(c, h.logger)
}

// ListResponse is the paginated envelope for collection endpoints.
type ListResponse struct {
	Count   int64       `json:"count"`
	Results interface{} `json:"results"`
}

// HandleServiceError maps domain errors to HTTP responses. Anything
// unrecognized is a 500 with a generic message.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, models.FieldErrorResponse{
			Message: "validation failed",
			Fields:  validationErrs.Fields(),
		})
		return
	}

	var permErr *services.PermissionError
	if errors.As(err, &permErr) {
		h.log(c).Warn("permission denied",
			"user_id", permErr.UserID,
			"resource", permErr.Resource,
			"action", permErr.Action)
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Message: "you do not have permission to perform this action",
		})
		return
	}

	if errors.Is(err, services.ErrNotAuthenticated) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "authentication required",
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrGenreNotFound),
		errors.Is(err, services.ErrTitleNotFound),
		errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Message: err.Error()})
		return
	}

	h.log(c).Error("unhandled service error", "error", err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Message: "internal server error",
	})
}

// BindJSON decodes the request body, reporting malformed payloads as 400s.
func (h *BaseHandler) BindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// MethodNotAllowed is registered for verbs a route rejects outright, such as
// full replacement of catalog objects.
func (h *BaseHandler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusForbidden, models.ErrorResponse{
		Message: "method not allowed on this resource",
	})
}
