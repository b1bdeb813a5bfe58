package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/services"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

// CommentHandler serves comments nested under title reviews.
type CommentHandler struct {
	BaseHandler
	comments services.CommentService
}

func NewCommentHandler(comments services.CommentService, logger utils.Logger) *CommentHandler {
	return &CommentHandler{
		BaseHandler: NewBaseHandler(logger),
		comments:    comments,
	}
}

// pathIDs reads the title/review pair every comment route carries.
func (h *CommentHandler) pathIDs(c *gin.Context) (titleID, reviewID uint, ok bool) {
	titleID, ok = parseID(c, "title_id")
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "title not found"})
		return 0, 0, false
	}
	reviewID, ok = parseID(c, "review_id")
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "review not found"})
		return 0, 0, false
	}
	return titleID, reviewID, true
}

func commentResponses(comments []*models.Comment) []*models.CommentResponse {
	out := make([]*models.CommentResponse, len(comments))
	for i, cm := range comments {
		out[i] = models.NewCommentResponse(cm)
	}
	return out
}

func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	comments, total, err := h.comments.ListComments(c.Request.Context(), titleID, reviewID, parsePage(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Count: total, Results: commentResponses(comments)})
}

func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "comment not found"})
		return
	}

	comment, err := h.comments.GetComment(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCommentResponse(comment))
}

func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req validator.CommentCreateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), GetUserFromContext(c), titleID, reviewID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewCommentResponse(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "comment not found"})
		return
	}

	var req validator.CommentUpdateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	comment, err := h.comments.UpdateComment(c.Request.Context(), GetUserFromContext(c), titleID, reviewID, commentID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCommentResponse(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "comment not found"})
		return
	}

	if err := h.comments.DeleteComment(c.Request.Context(), GetUserFromContext(c), titleID, reviewID, commentID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
