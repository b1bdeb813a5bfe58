package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/services"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

// AuthHandler serves signup and token issuance.
type AuthHandler struct {
	BaseHandler
	auth services.AuthService
}

func NewAuthHandler(authSvc services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		auth:        authSvc,
	}
}

// Signup accepts a username/email pair and mails out a confirmation code.
// Repeating the same pair re-issues the code with the same response.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req validator.SignupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SignupResponse{
		Username: user.Username,
		Email:    user.Email,
	})
}

// Token exchanges a username and confirmation code for an access token. An
// unknown username is a 404 so clients can distinguish it from a bad code.
func (h *AuthHandler) Token(c *gin.Context) {
	var req validator.TokenRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, err := h.auth.IssueToken(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: token})
}
