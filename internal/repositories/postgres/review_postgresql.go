package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/critiq-labs/review-service/internal/cache"
	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
)

type reviewRepository struct {
	repo *PostgresRepository
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.repo.db.WithContext(ctx).Create(review).Error; err != nil {
		return err
	}
	if err := r.repo.db.WithContext(ctx).Preload("Author").First(review, review.ID).Error; err != nil {
		return fmt.Errorf("failed to reload review: %w", err)
	}
	cache.InvalidateTitle(ctx, r.repo.caches, review.TitleID)
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, titleID, id uint) (*models.Review, error) {
	var review models.Review
	err := r.repo.db.WithContext(ctx).
		Preload("Author").
		Where("title_id = ? AND id = ?", titleID, id).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByTitle(ctx context.Context, titleID uint, filters repositories.PageFilters) ([]*models.Review, int64, error) {
	var reviews []*models.Review
	var total int64

	query := r.repo.db.WithContext(ctx).Model(&models.Review{}).Where("title_id = ?", titleID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	err := query.
		Preload("Author").
		Order("pub_date DESC, id DESC").
		Limit(filters.Limit).Offset(filters.Offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	err := r.repo.db.WithContext(ctx).
		Model(review).
		Select("Text", "Score").
		Updates(review).Error
	if err != nil {
		return err
	}
	cache.InvalidateTitle(ctx, r.repo.caches, review.TitleID)
	return nil
}

// Delete removes a review and its comments in one transaction. Comments
// reference reviews without a database constraint, so the cleanup is explicit.
func (r *reviewRepository) Delete(ctx context.Context, review *models.Review) error {
	err := r.repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := newPostgresRepository(tx, r.repo.caches, r.repo.logger)
		if err := txRepo.Comment().DeleteByReview(ctx, review.ID); err != nil {
			return fmt.Errorf("failed to delete review comments: %w", err)
		}
		return tx.Delete(review).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateTitle(ctx, r.repo.caches, review.TitleID)
	return nil
}

func (r *reviewRepository) ExistsByTitleAndAuthor(ctx context.Context, titleID, authorID uint) (bool, error) {
	var count int64
	err := r.repo.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check review existence: %w", err)
	}
	return count > 0, nil
}
