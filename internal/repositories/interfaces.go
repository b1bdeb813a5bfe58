package repositories

import (
	"context"

	"github.com/critiq-labs/review-service/internal/models"
)

// CatalogFilters narrows category and genre listings.
type CatalogFilters struct {
	Query  string // substring match on name
	Limit  int
	Offset int
}

// TitleFilters narrows title listings.
type TitleFilters struct {
	Name     string // substring match
	Year     *int   // exact match
	Category string // substring match on category slug
	Genre    string // substring match on genre slug
	Limit    int
	Offset   int
}

// PageFilters is plain pagination for nested listings.
type PageFilters struct {
	Limit  int
	Offset int
}

// UserFilters narrows user listings.
type UserFilters struct {
	Query  string // substring match on username
	Limit  int
	Offset int
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context, filters CatalogFilters) ([]*models.Category, int64, error)
	Delete(ctx context.Context, slug string) error
}

type GenreRepository interface {
	Create(ctx context.Context, genre *models.Genre) error
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	List(ctx context.Context, filters CatalogFilters) ([]*models.Genre, int64, error)
	Delete(ctx context.Context, slug string) error
}

type TitleRepository interface {
	Create(ctx context.Context, title *models.Title) error
	GetByID(ctx context.Context, id uint) (*models.Title, error)
	List(ctx context.Context, filters TitleFilters) ([]*models.Title, int64, error)
	Update(ctx context.Context, title *models.Title) error
	ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id uint) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, titleID, id uint) (*models.Review, error)
	ListByTitle(ctx context.Context, titleID uint, filters PageFilters) ([]*models.Review, int64, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, review *models.Review) error
	ExistsByTitleAndAuthor(ctx context.Context, titleID, authorID uint) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, reviewID, id uint) (*models.Comment, error)
	ListByReview(ctx context.Context, reviewID uint, filters PageFilters) ([]*models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	DeleteByReview(ctx context.Context, reviewID uint) error
}
