package services

import (
	"context"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

type catalogService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
}

func NewCatalogService(repo repositories.Repository, v *validator.Validator, logger utils.Logger) CatalogService {
	return &catalogService{repo: repo, validator: v, logger: logger}
}

func (s *catalogService) ListCategories(ctx context.Context, filters repositories.CatalogFilters) ([]*models.Category, int64, error) {
	return s.repo.Category().List(ctx, filters)
}

func (s *catalogService) CreateCategory(ctx context.Context, actor *models.User, req validator.CategoryCreateRequest) (*models.Category, error) {
	if err := requireCatalogWriter(actor, "category", "create"); err != nil {
		return nil, err
	}
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Category().Create(ctx, category); err != nil {
		return nil, translateDuplicate(err, "slug", "category with this slug already exists")
	}

	s.logger.Info("category created", "slug", category.Slug, "actor_id", actor.ID)
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, actor *models.User, slug string) error {
	if err := requireCatalogWriter(actor, "category", "delete"); err != nil {
		return err
	}
	if err := s.repo.Category().Delete(ctx, slug); err != nil {
		return translateNotFound(err, ErrCategoryNotFound)
	}
	s.logger.Info("category deleted", "slug", slug, "actor_id", actor.ID)
	return nil
}

func (s *catalogService) ListGenres(ctx context.Context, filters repositories.CatalogFilters) ([]*models.Genre, int64, error) {
	return s.repo.Genre().List(ctx, filters)
}

func (s *catalogService) CreateGenre(ctx context.Context, actor *models.User, req validator.GenreCreateRequest) (*models.Genre, error) {
	if err := requireCatalogWriter(actor, "genre", "create"); err != nil {
		return nil, err
	}
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Genre().Create(ctx, genre); err != nil {
		return nil, translateDuplicate(err, "slug", "genre with this slug already exists")
	}

	s.logger.Info("genre created", "slug", genre.Slug, "actor_id", actor.ID)
	return genre, nil
}

func (s *catalogService) DeleteGenre(ctx context.Context, actor *models.User, slug string) error {
	if err := requireCatalogWriter(actor, "genre", "delete"); err != nil {
		return err
	}
	if err := s.repo.Genre().Delete(ctx, slug); err != nil {
		return translateNotFound(err, ErrGenreNotFound)
	}
	s.logger.Info("genre deleted", "slug", slug, "actor_id", actor.ID)
	return nil
}
