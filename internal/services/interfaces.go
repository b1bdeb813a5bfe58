package services

import (
	"context"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
	"github.com/critiq-labs/review-service/internal/validator"
)

// CatalogService manages categories and genres.
type CatalogService interface {
	ListCategories(ctx context.Context, filters repositories.CatalogFilters) ([]*models.Category, int64, error)
	CreateCategory(ctx context.Context, actor *models.User, req validator.CategoryCreateRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, actor *models.User, slug string) error

	ListGenres(ctx context.Context, filters repositories.CatalogFilters) ([]*models.Genre, int64, error)
	CreateGenre(ctx context.Context, actor *models.User, req validator.GenreCreateRequest) (*models.Genre, error)
	DeleteGenre(ctx context.Context, actor *models.User, slug string) error
}

// TitleService manages titles and their computed ratings.
type TitleService interface {
	ListTitles(ctx context.Context, filters repositories.TitleFilters) ([]*models.Title, int64, error)
	GetTitle(ctx context.Context, id uint) (*models.Title, error)
	CreateTitle(ctx context.Context, actor *models.User, req validator.TitleCreateRequest) (*models.Title, error)
	UpdateTitle(ctx context.Context, actor *models.User, id uint, req validator.TitleUpdateRequest) (*models.Title, error)
	DeleteTitle(ctx context.Context, actor *models.User, id uint) error
}

// ReviewService manages reviews nested under titles.
type ReviewService interface {
	ListReviews(ctx context.Context, titleID uint, filters repositories.PageFilters) ([]*models.Review, int64, error)
	GetReview(ctx context.Context, titleID, id uint) (*models.Review, error)
	CreateReview(ctx context.Context, actor *models.User, titleID uint, req validator.ReviewCreateRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, actor *models.User, titleID, id uint, req validator.ReviewUpdateRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, actor *models.User, titleID, id uint) error
}

// CommentService manages comments nested under reviews.
type CommentService interface {
	ListComments(ctx context.Context, titleID, reviewID uint, filters repositories.PageFilters) ([]*models.Comment, int64, error)
	GetComment(ctx context.Context, titleID, reviewID, id uint) (*models.Comment, error)
	CreateComment(ctx context.Context, actor *models.User, titleID, reviewID uint, req validator.CommentCreateRequest) (*models.Comment, error)
	UpdateComment(ctx context.Context, actor *models.User, titleID, reviewID, id uint, req validator.CommentUpdateRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, actor *models.User, titleID, reviewID, id uint) error
}

// UserService manages accounts, both administrative and self-service.
type UserService interface {
	ListUsers(ctx context.Context, actor *models.User, filters repositories.UserFilters) ([]*models.User, int64, error)
	CreateUser(ctx context.Context, actor *models.User, req validator.UserCreateRequest) (*models.User, error)
	GetUser(ctx context.Context, actor *models.User, username string) (*models.User, error)
	UpdateUser(ctx context.Context, actor *models.User, username string, req validator.UserUpdateRequest) (*models.User, error)
	DeleteUser(ctx context.Context, actor *models.User, username string) error

	GetSelf(ctx context.Context, actor *models.User) (*models.User, error)
	UpdateSelf(ctx context.Context, actor *models.User, req validator.UserUpdateRequest) (*models.User, error)
}

// AuthService runs the signup and token flow.
type AuthService interface {
	// Signup registers or re-requests a confirmation code; the code is
	// mailed out of band.
	Signup(ctx context.Context, req validator.SignupRequest) (*models.User, error)
	// IssueToken exchanges a confirmation code for an access token.
	IssueToken(ctx context.Context, req validator.TokenRequest) (string, error)
	// UserByID loads the account behind verified token claims.
	UserByID(ctx context.Context, id uint) (*models.User, error)
}
