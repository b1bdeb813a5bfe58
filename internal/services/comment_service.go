package services

import (
	"context"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

type commentService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
}

func NewCommentService(repo repositories.Repository, v *validator.Validator, logger utils.Logger) CommentService {
	return &commentService{repo: repo, validator: v, logger: logger}
}

// requireReview resolves the path review and checks it belongs to the path
// title; a review under a different title is reported as missing.
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	if _, err := s.repo.Title().GetByID(ctx, titleID); err != nil {
		return nil, translateNotFound(err, ErrTitleNotFound)
	}
	review, err := s.repo.Review().GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, translateNotFound(err, ErrReviewNotFound)
	}
	return review, nil
}

func (s *commentService) ListComments(ctx context.Context, titleID, reviewID uint, filters repositories.PageFilters) ([]*models.Comment, int64, error) {
	if _, err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.repo.Comment().ListByReview(ctx, reviewID, filters)
}

func (s *commentService) GetComment(ctx context.Context, titleID, reviewID, id uint) (*models.Comment, error) {
	if _, err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.repo.Comment().GetByID(ctx, reviewID, id)
	if err != nil {
		return nil, translateNotFound(err, ErrCommentNotFound)
	}
	return comment, nil
}

func (s *commentService) CreateComment(ctx context.Context, actor *models.User, titleID, reviewID uint, req validator.CommentCreateRequest) (*models.Comment, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}
	if _, err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     req.Text,
		ReviewID: reviewID,
		AuthorID: actor.ID,
	}
	if err := s.repo.Comment().Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		"comment_id", comment.ID,
		"review_id", reviewID,
		"author_id", actor.ID)
	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, actor *models.User, titleID, reviewID, id uint, req validator.CommentUpdateRequest) (*models.Comment, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	comment, err := s.GetComment(ctx, titleID, reviewID, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrStaff(actor, comment.AuthorID, "comment", "update"); err != nil {
		return nil, err
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}
	if err := s.repo.Comment().Update(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment updated", "comment_id", id, "actor_id", actor.ID)
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actor *models.User, titleID, reviewID, id uint) error {
	comment, err := s.GetComment(ctx, titleID, reviewID, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrStaff(actor, comment.AuthorID, "comment", "delete"); err != nil {
		return err
	}

	if err := s.repo.Comment().Delete(ctx, comment.ID); err != nil {
		return err
	}
	s.logger.Info("comment deleted", "comment_id", id, "actor_id", actor.ID)
	return nil
}
