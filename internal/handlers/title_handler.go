package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/services"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

// TitleHandler serves titles with their computed ratings.
type TitleHandler struct {
	BaseHandler
	titles services.TitleService
}

func NewTitleHandler(titles services.TitleService, logger utils.Logger) *TitleHandler {
	return &TitleHandler{
		BaseHandler: NewBaseHandler(logger),
		titles:      titles,
	}
}

func (h *TitleHandler) List(c *gin.Context) {
	titles, total, err := h.titles.ListTitles(c.Request.Context(), parseTitleFilters(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Count: total, Results: titles})
}

func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "title_id")
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "title not found"})
		return
	}

	title, err := h.titles.GetTitle(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

func (h *TitleHandler) Create(c *gin.Context) {
	var req validator.TitleCreateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	title, err := h.titles.CreateTitle(c.Request.Context(), GetUserFromContext(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, title)
}

func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "title_id")
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "title not found"})
		return
	}

	var req validator.TitleUpdateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	title, err := h.titles.UpdateTitle(c.Request.Context(), GetUserFromContext(c), id, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "title_id")
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "title not found"})
		return
	}

	if err := h.titles.DeleteTitle(c.Request.Context(), GetUserFromContext(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
