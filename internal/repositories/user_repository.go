package repositories

import (
	"context"

	"github.com/critiq-labs/review-service/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetByUsernameAndEmail matches both fields exactly.
	GetByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error)
	// FindPartialMatches returns users that collide with the given
	// identity on exactly one of the two fields.
	FindPartialMatches(ctx context.Context, username, email string) ([]*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, username string) error
}
