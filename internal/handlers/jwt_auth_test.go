package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critiq-labs/review-service/internal/auth"
	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/services"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

type stubAuthService struct {
	users map[uint]*models.User
}

func (s *stubAuthService) Signup(context.Context, validator.SignupRequest) (*models.User, error) {
	panic("not used")
}

func (s *stubAuthService) IssueToken(context.Context, validator.TokenRequest) (string, error) {
	panic("not used")
}

func (s *stubAuthService) UserByID(_ context.Context, id uint) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, services.ErrUserNotFound
}

func quietLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newAuthTestRouter(t *testing.T) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenManager("handler-test-secret", time.Hour)
	stub := &stubAuthService{users: map[uint]*models.User{
		7: {ID: 7, Username: "holder", Role: models.RoleUser},
	}}
	mw := NewAuthMiddleware(tokens, stub, quietLogger())

	router := gin.New()
	router.GET("/protected", mw.Required(), func(c *gin.Context) {
		user := GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	router.GET("/open", mw.Optional(), func(c *gin.Context) {
		if user := GetUserFromContext(c); user != nil {
			c.JSON(http.StatusOK, gin.H{"username": user.Username})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": nil})
	})
	return router, tokens
}

func TestRequiredAuthRejectsMissingToken(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequiredAuthRejectsBadToken(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequiredAuthRejectsUnknownUser(t *testing.T) {
	router, tokens := newAuthTestRouter(t)

	token, err := tokens.Issue(&models.User{ID: 99, Username: "ghost", Role: models.RoleUser})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequiredAuthAcceptsValidToken(t *testing.T) {
	router, tokens := newAuthTestRouter(t)

	token, err := tokens.Issue(&models.User{ID: 7, Username: "holder", Role: models.RoleUser})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "holder")
}

func TestOptionalAuthContinuesAnonymously(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthLoadsUser(t *testing.T) {
	router, tokens := newAuthTestRouter(t)

	token, err := tokens.Issue(&models.User{ID: 7, Username: "holder", Role: models.RoleUser})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "holder")
}
