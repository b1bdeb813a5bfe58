package postgres

import (
	"context"
	"fmt"

	"github.com/critiq-labs/review-service/internal/cache"
	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
)

type userRepository struct {
	repo *PostgresRepository
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.repo.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	cacheKey := fmt.Sprintf("id:%d", id)

	err := r.repo.caches.User.CacheOrExecute(ctx, cacheKey, &user, cache.UserCacheConfig.TTL,
		func() (interface{}, error) {
			var fetched models.User
			if err := r.repo.db.WithContext(ctx).First(&fetched, id).Error; err != nil {
				return nil, err
			}
			return &fetched, nil
		})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	cacheKey := fmt.Sprintf("username:%s", username)

	err := r.repo.caches.User.CacheOrExecute(ctx, cacheKey, &user, cache.UserCacheConfig.TTL,
		func() (interface{}, error) {
			var fetched models.User
			err := r.repo.db.WithContext(ctx).Where("username = ?", username).First(&fetched).Error
			if err != nil {
				return nil, err
			}
			return &fetched, nil
		})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error) {
	var user models.User
	err := r.repo.db.WithContext(ctx).
		Where("username = ? AND email = ?", username, email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindPartialMatches(ctx context.Context, username, email string) ([]*models.User, error) {
	var users []*models.User
	err := r.repo.db.WithContext(ctx).
		Where("(username = ? AND email <> ?) OR (email = ? AND username <> ?)",
			username, email, email, username).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find colliding users: %w", err)
	}
	return users, nil
}

func (r *userRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.repo.db.WithContext(ctx).Model(&models.User{})
	if filters.Query != "" {
		query = query.Where("username ILIKE ?", "%"+filters.Query+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	err := query.Order("username ASC").
		Limit(filters.Limit).Offset(filters.Offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	// A rename leaves the record cached under the old username; look it up
	// before writing so both keys can be dropped.
	var prev models.User
	prevErr := r.repo.db.WithContext(ctx).
		Select("username").Where("id = ?", user.ID).Take(&prev).Error

	err := r.repo.db.WithContext(ctx).
		Model(user).
		Select("Username", "Email", "FirstName", "LastName", "Bio", "Role", "ConfirmationSeq").
		Updates(user).Error
	if err != nil {
		return err
	}
	cache.InvalidateUser(ctx, r.repo.caches, user.ID, user.Username)
	if prevErr == nil && prev.Username != user.Username {
		cache.SafeDelete(ctx, r.repo.caches.User, fmt.Sprintf("username:%s", prev.Username))
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, username string) error {
	user, err := r.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := r.repo.db.WithContext(ctx).Delete(user).Error; err != nil {
		return err
	}
	cache.InvalidateUser(ctx, r.repo.caches, user.ID, user.Username)
	return nil
}

var _ repositories.UserRepository = (*userRepository)(nil)
