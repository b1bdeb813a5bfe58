package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/critiq-labs/review-service/internal/repositories"
	"github.com/critiq-labs/review-service/internal/services"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

// CatalogHandler serves categories and genres.
type CatalogHandler struct {
	BaseHandler
	catalog services.CatalogService
}

func NewCatalogHandler(catalog services.CatalogService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: NewBaseHandler(logger),
		catalog:     catalog,
	}
}

func parseCatalogFilters(c *gin.Context) repositories.CatalogFilters {
	page := parsePage(c)
	return repositories.CatalogFilters{
		Query:  c.Query("search"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, total, err := h.catalog.ListCategories(c.Request.Context(), parseCatalogFilters(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Count: total, Results: categories})
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req validator.CategoryCreateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	category, err := h.catalog.CreateCategory(c.Request.Context(), GetUserFromContext(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	err := h.catalog.DeleteCategory(c.Request.Context(), GetUserFromContext(c), c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ListGenres(c *gin.Context) {
	genres, total, err := h.catalog.ListGenres(c.Request.Context(), parseCatalogFilters(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Count: total, Results: genres})
}

func (h *CatalogHandler) CreateGenre(c *gin.Context) {
	var req validator.GenreCreateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	genre, err := h.catalog.CreateGenre(c.Request.Context(), GetUserFromContext(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, genre)
}

func (h *CatalogHandler) DeleteGenre(c *gin.Context) {
	err := h.catalog.DeleteGenre(c.Request.Context(), GetUserFromContext(c), c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseTitleFilters reads the title listing filters from the query string.
func parseTitleFilters(c *gin.Context) repositories.TitleFilters {
	page := parsePage(c)
	filters := repositories.TitleFilters{
		Name:     c.Query("name"),
		Category: c.Query("category"),
		Genre:    c.Query("genre"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	if raw := c.Query("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			filters.Year = &year
		}
	}
	return filters
}
