package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/critiq-labs/review-service/internal/cache"
	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
)

type genreRepository struct {
	repo *PostgresRepository
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	if err := r.repo.db.WithContext(ctx).Create(genre).Error; err != nil {
		return err
	}
	cache.InvalidateCatalog(ctx, r.repo.caches)
	return nil
}

func (r *genreRepository) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var genre models.Genre
	err := r.repo.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// GetBySlugs resolves slugs preserving gorm.ErrRecordNotFound when any
// slug is unknown, so callers can report the bad reference.
func (r *genreRepository) GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	if len(slugs) == 0 {
		return genres, nil
	}
	err := r.repo.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&genres).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve genre slugs: %w", err)
	}
	if len(genres) != len(uniqueStrings(slugs)) {
		return nil, gorm.ErrRecordNotFound
	}
	return genres, nil
}

type genrePage struct {
	Items []*models.Genre `json:"items"`
	Total int64           `json:"total"`
}

func (r *genreRepository) List(ctx context.Context, filters repositories.CatalogFilters) ([]*models.Genre, int64, error) {
	key := fmt.Sprintf("genres:q=%s:l=%d:o=%d", filters.Query, filters.Limit, filters.Offset)
	var page genrePage
	err := r.repo.caches.Catalog.CacheOrExecute(ctx, key, &page, cache.CatalogCacheConfig.TTL, func() (interface{}, error) {
		var genres []*models.Genre
		var total int64

		query := r.repo.db.WithContext(ctx).Model(&models.Genre{})
		if filters.Query != "" {
			query = query.Where("name ILIKE ?", "%"+filters.Query+"%")
		}
		if err := query.Count(&total).Error; err != nil {
			return nil, fmt.Errorf("failed to count genres: %w", err)
		}
		err := query.Order("id DESC").
			Limit(filters.Limit).Offset(filters.Offset).
			Find(&genres).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list genres: %w", err)
		}
		return genrePage{Items: genres, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return page.Items, page.Total, nil
}

func (r *genreRepository) Delete(ctx context.Context, slug string) error {
	result := r.repo.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Genre{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateCatalog(ctx, r.repo.caches)
	return nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
