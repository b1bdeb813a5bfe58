package services

import (
	"context"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

type titleService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
}

func NewTitleService(repo repositories.Repository, v *validator.Validator, logger utils.Logger) TitleService {
	return &titleService{repo: repo, validator: v, logger: logger}
}

func (s *titleService) ListTitles(ctx context.Context, filters repositories.TitleFilters) ([]*models.Title, int64, error) {
	return s.repo.Title().List(ctx, filters)
}

func (s *titleService) GetTitle(ctx context.Context, id uint) (*models.Title, error) {
	title, err := s.repo.Title().GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, ErrTitleNotFound)
	}
	return title, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.repo.Category().GetBySlug(ctx, slug)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, validator.ValidationErrors{{
				Field:   "category",
				Message: "unknown category slug",
				Value:   slug,
				Rule:    "exists",
			}}
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres, err := s.repo.Genre().GetBySlugs(ctx, slugs)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, validator.ValidationErrors{{
				Field:   "genre",
				Message: "unknown genre slug",
				Value:   slugs,
				Rule:    "exists",
			}}
		}
		return nil, err
	}
	return genres, nil
}

func (s *titleService) CreateTitle(ctx context.Context, actor *models.User, req validator.TitleCreateRequest) (*models.Title, error) {
	if err := requireCatalogWriter(actor, "title", "create"); err != nil {
		return nil, err
	}
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}
	if errs := s.validator.ValidateYear(req.Year); len(errs) > 0 {
		return nil, errs
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  &category.ID,
		Genres:      genres,
	}
	if err := s.repo.Title().Create(ctx, title); err != nil {
		return nil, translateDuplicate(err, "name", "title with this name, year and category already exists")
	}

	s.logger.Info("title created", "title_id", title.ID, "actor_id", actor.ID)
	return s.GetTitle(ctx, title.ID)
}

func (s *titleService) UpdateTitle(ctx context.Context, actor *models.User, id uint, req validator.TitleUpdateRequest) (*models.Title, error) {
	if err := requireCatalogWriter(actor, "title", "update"); err != nil {
		return nil, err
	}
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}
	if req.Year != nil {
		if errs := s.validator.ValidateYear(*req.Year); len(errs) > 0 {
			return nil, errs
		}
	}

	title, err := s.repo.Title().GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, ErrTitleNotFound)
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	if err := s.repo.Title().Update(ctx, title); err != nil {
		return nil, translateDuplicate(err, "name", "title with this name, year and category already exists")
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Title().ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	s.logger.Info("title updated", "title_id", id, "actor_id", actor.ID)
	return s.GetTitle(ctx, id)
}

func (s *titleService) DeleteTitle(ctx context.Context, actor *models.User, id uint) error {
	if err := requireCatalogWriter(actor, "title", "delete"); err != nil {
		return err
	}
	if err := s.repo.Title().Delete(ctx, id); err != nil {
		return translateNotFound(err, ErrTitleNotFound)
	}
	s.logger.Info("title deleted", "title_id", id, "actor_id", actor.ID)
	return nil
}
