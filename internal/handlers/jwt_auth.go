package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/critiq-labs/review-service/internal/auth"
	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/services"
	"github.com/critiq-labs/review-service/internal/utils"
)

const (
	contextUserKey     = "user"
	contextUserIDKey   = "user_id"
	contextUserRoleKey = "user_role"
)

// AuthMiddleware verifies the bearer token and loads the account behind it
// into the gin context. Requests without a valid token are rejected.
type AuthMiddleware struct {
	tokens *auth.TokenManager
	auth   services.AuthService
	logger utils.Logger
}

func NewAuthMiddleware(tokens *auth.TokenManager, authSvc services.AuthService, logger utils.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, auth: authSvc, logger: logger}
}

func (m *AuthMiddleware) resolveUser(c *gin.Context) (*models.User, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		m.logger.Debug("token rejected", "error", err)
		return nil, false
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, false
	}

	user, err := m.auth.UserByID(c.Request.Context(), uint(id))
	if err != nil {
		m.logger.Debug("token user not found", "user_id", id)
		return nil, false
	}
	return user, true
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(contextUserKey, user)
	c.Set(contextUserIDKey, user.ID)
	c.Set(contextUserRoleKey, string(user.Role))
}

// Required rejects requests that do not carry a valid token.
func (m *AuthMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := m.resolveUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "valid access token required",
			})
			return
		}
		setUser(c, user)
		c.Next()
	}
}

// Optional loads the user when a valid token is present and continues
// anonymously otherwise. Read endpoints use it so ownership checks still see
// the actor.
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := m.resolveUser(c); ok {
			setUser(c, user)
		}
		c.Next()
	}
}

// GetUserFromContext returns the authenticated user, or nil for anonymous
// requests.
func GetUserFromContext(c *gin.Context) *models.User {
	if v, ok := c.Get(contextUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
