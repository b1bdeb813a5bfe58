package services

import (
	"context"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

type reviewService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
}

func NewReviewService(repo repositories.Repository, v *validator.Validator, logger utils.Logger) ReviewService {
	return &reviewService{repo: repo, validator: v, logger: logger}
}

// requireTitle resolves the path title or reports it missing.
func (s *reviewService) requireTitle(ctx context.Context, titleID uint) error {
	_, err := s.repo.Title().GetByID(ctx, titleID)
	if err != nil {
		return translateNotFound(err, ErrTitleNotFound)
	}
	return nil
}

func (s *reviewService) ListReviews(ctx context.Context, titleID uint, filters repositories.PageFilters) ([]*models.Review, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.repo.Review().ListByTitle(ctx, titleID, filters)
}

func (s *reviewService) GetReview(ctx context.Context, titleID, id uint) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.repo.Review().GetByID(ctx, titleID, id)
	if err != nil {
		return nil, translateNotFound(err, ErrReviewNotFound)
	}
	return review, nil
}

func (s *reviewService) CreateReview(ctx context.Context, actor *models.User, titleID uint, req validator.ReviewCreateRequest) (*models.Review, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	exists, err := s.repo.Review().ExistsByTitleAndAuthor(ctx, titleID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validator.ValidationErrors{{
			Field:   "title",
			Message: "you have already reviewed this title",
			Rule:    "unique",
		}}
	}

	review := &models.Review{
		Text:     req.Text,
		Score:    req.Score,
		TitleID:  titleID,
		AuthorID: actor.ID,
	}
	if err := s.repo.Review().Create(ctx, review); err != nil {
		return nil, translateDuplicate(err, "title", "you have already reviewed this title")
	}

	s.logger.Info("review created",
		"review_id", review.ID,
		"title_id", titleID,
		"author_id", actor.ID)
	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, actor *models.User, titleID, id uint, req validator.ReviewUpdateRequest) (*models.Review, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	review, err := s.GetReview(ctx, titleID, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrStaff(actor, review.AuthorID, "review", "update"); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	if err := s.repo.Review().Update(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("review updated", "review_id", id, "actor_id", actor.ID)
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actor *models.User, titleID, id uint) error {
	review, err := s.GetReview(ctx, titleID, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrStaff(actor, review.AuthorID, "review", "delete"); err != nil {
		return err
	}

	if err := s.repo.Review().Delete(ctx, review); err != nil {
		return err
	}
	s.logger.Info("review deleted", "review_id", id, "actor_id", actor.ID)
	return nil
}
