package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/critiq-labs/review-service/internal/cache"
	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
)

type categoryRepository struct {
	repo *PostgresRepository
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.repo.db.WithContext(ctx).Create(category).Error; err != nil {
		return err
	}
	cache.InvalidateCatalog(ctx, r.repo.caches)
	return nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.repo.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

type categoryPage struct {
	Items []*models.Category `json:"items"`
	Total int64              `json:"total"`
}

func (r *categoryRepository) List(ctx context.Context, filters repositories.CatalogFilters) ([]*models.Category, int64, error) {
	key := fmt.Sprintf("categories:q=%s:l=%d:o=%d", filters.Query, filters.Limit, filters.Offset)
	var page categoryPage
	err := r.repo.caches.Catalog.CacheOrExecute(ctx, key, &page, cache.CatalogCacheConfig.TTL, func() (interface{}, error) {
		var categories []*models.Category
		var total int64

		query := r.repo.db.WithContext(ctx).Model(&models.Category{})
		if filters.Query != "" {
			query = query.Where("name ILIKE ?", "%"+filters.Query+"%")
		}
		if err := query.Count(&total).Error; err != nil {
			return nil, fmt.Errorf("failed to count categories: %w", err)
		}
		err := query.Order("id DESC").
			Limit(filters.Limit).Offset(filters.Offset).
			Find(&categories).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		return categoryPage{Items: categories, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return page.Items, page.Total, nil
}

func (r *categoryRepository) Delete(ctx context.Context, slug string) error {
	result := r.repo.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateCatalog(ctx, r.repo.caches)
	return nil
}
