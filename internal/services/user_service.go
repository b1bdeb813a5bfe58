package services

import (
	"context"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
}

func NewUserService(repo repositories.Repository, v *validator.Validator, logger utils.Logger) UserService {
	return &userService{repo: repo, validator: v, logger: logger}
}

func (s *userService) ListUsers(ctx context.Context, actor *models.User, filters repositories.UserFilters) ([]*models.User, int64, error) {
	if err := requireAdmin(actor, "user", "list"); err != nil {
		return nil, 0, err
	}
	return s.repo.User().List(ctx, filters)
}

func (s *userService) CreateUser(ctx context.Context, actor *models.User, req validator.UserCreateRequest) (*models.User, error) {
	if err := requireAdmin(actor, "user", "create"); err != nil {
		return nil, err
	}
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}
	if errs := s.validator.ValidateUsernameValue(req.Username); len(errs) > 0 {
		return nil, errs
	}

	role := models.RoleUser
	if req.Role != "" {
		role = models.UserRole(req.Role)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, translateDuplicate(err, "username", "user with this username or email already exists")
	}

	s.logger.Info("user created", "username", user.Username, "actor_id", actor.ID)
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, actor *models.User, username string) (*models.User, error) {
	if err := requireAdmin(actor, "user", "retrieve"); err != nil {
		return nil, err
	}
	user, err := s.repo.User().GetByUsername(ctx, username)
	if err != nil {
		return nil, translateNotFound(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor *models.User, username string, req validator.UserUpdateRequest) (*models.User, error) {
	if err := requireAdmin(actor, "user", "update"); err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, username, req, true)
}

func (s *userService) DeleteUser(ctx context.Context, actor *models.User, username string) error {
	if err := requireAdmin(actor, "user", "delete"); err != nil {
		return err
	}
	if err := s.repo.User().Delete(ctx, username); err != nil {
		return translateNotFound(err, ErrUserNotFound)
	}
	s.logger.Info("user deleted", "username", username, "actor_id", actor.ID)
	return nil
}

func (s *userService) GetSelf(ctx context.Context, actor *models.User) (*models.User, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	user, err := s.repo.User().GetByID(ctx, actor.ID)
	if err != nil {
		return nil, translateNotFound(err, ErrUserNotFound)
	}
	return user, nil
}

// UpdateSelf lets any authenticated user edit their own profile. The role
// field is kept as-is for plain users, so they cannot promote themselves;
// moderators and admins keep whatever role they submit.
func (s *userService) UpdateSelf(ctx context.Context, actor *models.User, req validator.UserUpdateRequest) (*models.User, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	allowRoleChange := actor.IsStaff()
	return s.applyUpdate(ctx, actor.Username, req, allowRoleChange)
}

func (s *userService) applyUpdate(ctx context.Context, username string, req validator.UserUpdateRequest, allowRoleChange bool) (*models.User, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}
	if req.Username != nil {
		if errs := s.validator.ValidateUsernameValue(*req.Username); len(errs) > 0 {
			return nil, errs
		}
	}

	user, err := s.repo.User().GetByUsername(ctx, username)
	if err != nil {
		return nil, translateNotFound(err, ErrUserNotFound)
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil && allowRoleChange {
		user.Role = models.UserRole(*req.Role)
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, translateDuplicate(err, "username", "user with this username or email already exists")
	}

	s.logger.Info("user updated", "username", user.Username)
	return user, nil
}
