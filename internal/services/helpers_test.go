package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/critiq-labs/review-service/internal/auth"
	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

func quietLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestValidator(t *testing.T) *validator.Validator {
	t.Helper()
	v, err := validator.New()
	require.NoError(t, err)
	return v
}

func seedUser(t *testing.T, repo *fakeRepository, username string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, repo.User().Create(context.Background(), user))
	return user
}

func seedCatalog(t *testing.T, repo *fakeRepository) (*models.Category, *models.Genre) {
	t.Helper()
	category := &models.Category{Name: "Movies", Slug: "movies"}
	require.NoError(t, repo.Category().Create(context.Background(), category))
	genre := &models.Genre{Name: "Drama", Slug: "drama"}
	require.NoError(t, repo.Genre().Create(context.Background(), genre))
	return category, genre
}

func seedTitle(t *testing.T, repo *fakeRepository, name string) *models.Title {
	t.Helper()
	title := &models.Title{Name: name, Year: 2020}
	require.NoError(t, repo.Title().Create(context.Background(), title))
	return title
}

func listAll() repositories.UserFilters {
	return repositories.UserFilters{Limit: 100}
}

func pageAll() repositories.PageFilters {
	return repositories.PageFilters{Limit: 100}
}

func newTestTokens() *auth.TokenManager {
	return auth.NewTokenManager("service-test-secret", time.Hour)
}

func newTestCodes() *auth.ConfirmationCodes {
	return auth.NewConfirmationCodes("service-test-confirmation")
}
