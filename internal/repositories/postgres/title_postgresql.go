package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/critiq-labs/review-service/internal/cache"
	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
)

type titleRepository struct {
	repo *PostgresRepository
}

// withRating annotates every selected title with the average review score.
func (r *titleRepository) withRating(ctx context.Context) *gorm.DB {
	return r.repo.db.WithContext(ctx).
		Model(&models.Title{}).
		Select("titles.*, (SELECT AVG(score) FROM reviews WHERE reviews.title_id = titles.id) AS rating")
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	if err := r.repo.db.WithContext(ctx).Create(title).Error; err != nil {
		return err
	}
	cache.InvalidateTitle(ctx, r.repo.caches, title.ID)
	return nil
}

func (r *titleRepository) GetByID(ctx context.Context, id uint) (*models.Title, error) {
	var title models.Title
	cacheKey := fmt.Sprintf("id:%d", id)

	err := r.repo.caches.Title.CacheOrExecute(ctx, cacheKey, &title, cache.TitleCacheConfig.TTL,
		func() (interface{}, error) {
			var fetched models.Title
			err := r.withRating(ctx).
				Preload("Category").
				Preload("Genres").
				Where("titles.id = ?", id).
				First(&fetched).Error
			if err != nil {
				return nil, err
			}
			return &fetched, nil
		})
	if err != nil {
		return nil, err
	}
	return &title, nil
}

type titlePage struct {
	Items []*models.Title `json:"items"`
	Total int64           `json:"total"`
}

func titleListKey(filters repositories.TitleFilters) string {
	year := ""
	if filters.Year != nil {
		year = fmt.Sprintf("%d", *filters.Year)
	}
	return fmt.Sprintf("list:n=%s:y=%s:c=%s:g=%s:l=%d:o=%d",
		filters.Name, year, filters.Category, filters.Genre,
		filters.Limit, filters.Offset)
}

func (r *titleRepository) List(ctx context.Context, filters repositories.TitleFilters) ([]*models.Title, int64, error) {
	var page titlePage
	err := r.repo.caches.Title.CacheOrExecute(ctx, titleListKey(filters), &page, cache.TitleCacheConfig.TTL, func() (interface{}, error) {
		var titles []*models.Title
		var total int64

		query := r.repo.db.WithContext(ctx).Model(&models.Title{})
		query = applyTitleFilters(query, filters)

		if err := query.Distinct("titles.id").Count(&total).Error; err != nil {
			return nil, fmt.Errorf("failed to count titles: %w", err)
		}

		listQuery := applyTitleFilters(r.withRating(ctx), filters)
		err := listQuery.
			Preload("Category").
			Preload("Genres").
			Group("titles.id").
			Order("titles.id DESC").
			Limit(filters.Limit).Offset(filters.Offset).
			Find(&titles).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list titles: %w", err)
		}
		return titlePage{Items: titles, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return page.Items, page.Total, nil
}

func applyTitleFilters(query *gorm.DB, filters repositories.TitleFilters) *gorm.DB {
	if filters.Name != "" {
		query = query.Where("titles.name ILIKE ?", "%"+filters.Name+"%")
	}
	if filters.Year != nil {
		query = query.Where("titles.year = ?", *filters.Year)
	}
	if filters.Category != "" {
		query = query.
			Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug ILIKE ?", "%"+filters.Category+"%")
	}
	if filters.Genre != "" {
		query = query.
			Joins("JOIN genre_titles ON genre_titles.title_id = titles.id").
			Joins("JOIN genres ON genres.id = genre_titles.genre_id").
			Where("genres.slug ILIKE ?", "%"+filters.Genre+"%")
	}
	return query
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title) error {
	err := r.repo.db.WithContext(ctx).
		Model(title).
		Omit("Genres").
		Select("Name", "Year", "Description", "CategoryID").
		Updates(title).Error
	if err != nil {
		return err
	}
	cache.InvalidateTitle(ctx, r.repo.caches, title.ID)
	return nil
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	err := r.repo.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres)
	if err != nil {
		return fmt.Errorf("failed to replace title genres: %w", err)
	}
	cache.InvalidateTitle(ctx, r.repo.caches, title.ID)
	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id uint) error {
	result := r.repo.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateTitle(ctx, r.repo.caches, id)
	return nil
}
