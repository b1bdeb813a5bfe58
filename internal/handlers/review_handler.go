package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/services"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

// ReviewHandler serves reviews nested under titles.
type ReviewHandler struct {
	BaseHandler
	reviews services.ReviewService
}

func NewReviewHandler(reviews services.ReviewService, logger utils.Logger) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler: NewBaseHandler(logger),
		reviews:     reviews,
	}
}

func (h *ReviewHandler) pathTitle(c *gin.Context) (uint, bool) {
	id, ok := parseID(c, "title_id")
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "title not found"})
	}
	return id, ok
}

func (h *ReviewHandler) pathReview(c *gin.Context) (uint, bool) {
	id, ok := parseID(c, "review_id")
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "review not found"})
	}
	return id, ok
}

func reviewResponses(reviews []*models.Review) []*models.ReviewResponse {
	out := make([]*models.ReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = models.NewReviewResponse(r)
	}
	return out
}

func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := h.pathTitle(c)
	if !ok {
		return
	}

	reviews, total, err := h.reviews.ListReviews(c.Request.Context(), titleID, parsePage(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Count: total, Results: reviewResponses(reviews)})
}

func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := h.pathTitle(c)
	if !ok {
		return
	}
	reviewID, ok := h.pathReview(c)
	if !ok {
		return
	}

	review, err := h.reviews.GetReview(c.Request.Context(), titleID, reviewID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewReviewResponse(review))
}

func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := h.pathTitle(c)
	if !ok {
		return
	}

	var req validator.ReviewCreateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	review, err := h.reviews.CreateReview(c.Request.Context(), GetUserFromContext(c), titleID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewReviewResponse(review))
}

func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := h.pathTitle(c)
	if !ok {
		return
	}
	reviewID, ok := h.pathReview(c)
	if !ok {
		return
	}

	var req validator.ReviewUpdateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	review, err := h.reviews.UpdateReview(c.Request.Context(), GetUserFromContext(c), titleID, reviewID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewReviewResponse(review))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := h.pathTitle(c)
	if !ok {
		return
	}
	reviewID, ok := h.pathReview(c)
	if !ok {
		return
	}

	if err := h.reviews.DeleteReview(c.Request.Context(), GetUserFromContext(c), titleID, reviewID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
