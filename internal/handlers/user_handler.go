package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
	"github.com/critiq-labs/review-service/internal/services"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

// UserHandler serves the administrative account endpoints and the
// self-service /users/me endpoint.
type UserHandler struct {
	BaseHandler
	users services.UserService
}

func NewUserHandler(users services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		users:       users,
	}
}

func userResponses(users []*models.User) []*models.UserResponse {
	out := make([]*models.UserResponse, len(users))
	for i, u := range users {
		out[i] = models.NewUserResponse(u)
	}
	return out
}

func (h *UserHandler) List(c *gin.Context) {
	page := parsePage(c)
	filters := repositories.UserFilters{
		Query:  c.Query("search"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	users, total, err := h.users.ListUsers(c.Request.Context(), GetUserFromContext(c), filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Count: total, Results: userResponses(users)})
}

func (h *UserHandler) Create(c *gin.Context) {
	var req validator.UserCreateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), GetUserFromContext(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewUserResponse(user))
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), GetUserFromContext(c), c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	var req validator.UserUpdateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), GetUserFromContext(c), c.Param("username"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	err := h.users.DeleteUser(c.Request.Context(), GetUserFromContext(c), c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) GetSelf(c *gin.Context) {
	user, err := h.users.GetSelf(c.Request.Context(), GetUserFromContext(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

func (h *UserHandler) UpdateSelf(c *gin.Context) {
	var req validator.UserUpdateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.users.UpdateSelf(c.Request.Context(), GetUserFromContext(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewUserResponse(user))
}
