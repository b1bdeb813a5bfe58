package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
)

type commentRepository struct {
	repo *PostgresRepository
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.repo.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	if err := r.repo.db.WithContext(ctx).Preload("Author").First(comment, comment.ID).Error; err != nil {
		return fmt.Errorf("failed to reload comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, reviewID, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.repo.db.WithContext(ctx).
		Preload("Author").
		Where("review_id = ? AND id = ?", reviewID, id).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByReview(ctx context.Context, reviewID uint, filters repositories.PageFilters) ([]*models.Comment, int64, error) {
	var comments []*models.Comment
	var total int64

	query := r.repo.db.WithContext(ctx).Model(&models.Comment{}).Where("review_id = ?", reviewID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}
	err := query.
		Preload("Author").
		Order("pub_date DESC, id DESC").
		Limit(filters.Limit).Offset(filters.Offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.repo.db.WithContext(ctx).
		Model(comment).
		Select("Text").
		Updates(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	result := r.repo.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) DeleteByReview(ctx context.Context, reviewID uint) error {
	return r.repo.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Delete(&models.Comment{}).Error
}
