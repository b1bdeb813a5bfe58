package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/critiq-labs/review-service/internal/auth"
	"github.com/critiq-labs/review-service/internal/services"
)

func newRoutingTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenManager("routing-test-secret", time.Hour)
	mw := NewAuthMiddleware(tokens, &stubAuthService{}, quietLogger())

	router := gin.New()
	NewHandlerManager(&services.ServiceManager{}, mw, quietLogger()).SetupRoutes(router)
	return router
}

func request(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestFullReplaceIsDenied(t *testing.T) {
	router := newRoutingTestRouter(t)

	for _, path := range []string{
		"/api/v1/categories/films",
		"/api/v1/genres/rock",
		"/api/v1/titles/1",
	} {
		w := request(router, http.MethodPut, path)
		assert.Equal(t, http.StatusForbidden, w.Code, "PUT %s", path)
	}
}

func TestCatalogDetailVerbsNotSupported(t *testing.T) {
	router := newRoutingTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/categories/films"},
		{http.MethodPatch, "/api/v1/categories/films"},
		{http.MethodGet, "/api/v1/genres/rock"},
		{http.MethodPatch, "/api/v1/genres/rock"},
	}

	for _, tt := range tests {
		w := request(router, tt.method, tt.path)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestWriteRoutesRequireAuth(t *testing.T) {
	router := newRoutingTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/categories"},
		{http.MethodPost, "/api/v1/titles"},
		{http.MethodPatch, "/api/v1/titles/1"},
		{http.MethodDelete, "/api/v1/genres/rock"},
		{http.MethodPost, "/api/v1/titles/1/reviews"},
		{http.MethodGet, "/api/v1/users"},
		{http.MethodGet, "/api/v1/users/me"},
	}

	for _, tt := range tests {
		w := request(router, tt.method, tt.path)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tt.method, tt.path)
	}
}
