package services

import (
	"context"

	"github.com/critiq-labs/review-service/internal/auth"
	"github.com/critiq-labs/review-service/internal/events"
	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	validator *validator.Validator
	tokens    *auth.TokenManager
	codes     *auth.ConfirmationCodes
	publisher events.Publisher
	logger    utils.Logger
}

func NewAuthService(
	repo repositories.Repository,
	v *validator.Validator,
	tokens *auth.TokenManager,
	codes *auth.ConfirmationCodes,
	publisher events.Publisher,
	logger utils.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		validator: v,
		tokens:    tokens,
		codes:     codes,
		publisher: publisher,
		logger:    logger,
	}
}

// Signup registers a new account or re-requests a code for an existing one.
// Repeating a signup with the exact same username and email is allowed and
// rotates the code; reusing only one of the two fields is a conflict.
func (s *authService) Signup(ctx context.Context, req validator.SignupRequest) (*models.User, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}
	if errs := s.validator.ValidateUsernameValue(req.Username); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByUsernameAndEmail(ctx, req.Username, req.Email)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, err
	}

	if user == nil {
		colliding, err := s.repo.User().FindPartialMatches(ctx, req.Username, req.Email)
		if err != nil {
			return nil, err
		}
		if errs := collisionErrors(req, colliding); len(errs) > 0 {
			return nil, errs
		}

		user = &models.User{
			Username: req.Username,
			Email:    req.Email,
			Role:     models.RoleUser,
		}
		if err := s.repo.User().Create(ctx, user); err != nil {
			return nil, translateDuplicate(err, "username", "user with this username or email already exists")
		}
	}

	user.ConfirmationSeq++
	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, err
	}

	code, err := s.codes.Generate(user)
	if err != nil {
		return nil, err
	}

	event := events.ConfirmationRequested{
		Username: user.Username,
		Email:    user.Email,
		Code:     code,
	}
	if err := s.publisher.PublishConfirmationRequested(ctx, event); err != nil {
		// the code is already valid; the user can retry signup to get
		// a fresh one if the mail never arrives
		s.logger.Error("failed to publish confirmation event",
			"error", err,
			"username", user.Username)
	}

	s.logger.Info("confirmation code issued", "username", user.Username)
	return user, nil
}

func collisionErrors(req validator.SignupRequest, colliding []*models.User) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, u := range colliding {
		if u.Username == req.Username {
			errs.Add("username", "username is already taken", req.Username, "unique")
		}
		if u.Email == req.Email {
			errs.Add("email", "email is already registered", req.Email, "unique")
		}
	}
	return errs
}

func (s *authService) IssueToken(ctx context.Context, req validator.TokenRequest) (string, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return "", errs
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		return "", translateNotFound(err, ErrUserNotFound)
	}

	if !s.codes.Verify(user, req.ConfirmationCode) {
		return "", validator.ValidationErrors{{
			Field:   "confirmation_code",
			Message: "invalid confirmation code",
			Rule:    "confirmation_code",
		}}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}

	s.logger.Info("access token issued", "username", user.Username)
	return token, nil
}

func (s *authService) UserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, ErrUserNotFound)
	}
	return user, nil
}
