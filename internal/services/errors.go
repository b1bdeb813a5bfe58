package services

import (
	"errors"
	"fmt"

	"github.com/critiq-labs/review-service/internal/repositories"
	"github.com/critiq-labs/review-service/internal/validator"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrUserNotFound     = errors.New("user not found")

	// ErrNotAuthenticated marks requests that need a valid token.
	ErrNotAuthenticated = errors.New("authentication required")
)

// PermissionError is returned when an authenticated user attempts an action
// their role does not allow.
type PermissionError struct {
	UserID   uint
	Resource string
	Action   string
	Reason   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d may not %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
}

func NewPermissionError(userID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:   userID,
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}

// translateNotFound converts a repository miss into the domain sentinel,
// passing other errors through.
func translateNotFound(err, sentinel error) error {
	if repositories.IsNotFoundError(err) {
		return sentinel
	}
	return err
}

// translateDuplicate converts a unique-constraint violation into a field
// validation error so concurrent duplicate writes surface as bad requests.
func translateDuplicate(err error, field, message string) error {
	if repositories.IsDuplicateError(err) {
		return validator.NewConflictError(field, message)
	}
	return err
}
