package services

import "github.com/critiq-labs/review-service/internal/models"

// requireCatalogWriter gates category, genre and title writes behind the
// administrator role.
func requireCatalogWriter(actor *models.User, resource, action string) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	if !actor.IsAdminOrSuperuser() {
		return NewPermissionError(actor.ID, resource, action, "administrator role required")
	}
	return nil
}

// requireAuthenticated gates review and comment creation.
func requireAuthenticated(actor *models.User) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	return nil
}

// requireOwnerOrStaff gates review and comment updates and deletes: the
// author may touch their own object, moderators and administrators may touch
// any.
func requireOwnerOrStaff(actor *models.User, authorID uint, resource, action string) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	if actor.ID == authorID || actor.IsStaff() {
		return nil
	}
	return NewPermissionError(actor.ID, resource, action, "not the author and not staff")
}

// requireAdmin gates the account management endpoints.
func requireAdmin(actor *models.User, resource, action string) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	if !actor.IsAdminOrSuperuser() {
		return NewPermissionError(actor.ID, resource, action, "administrator role required")
	}
	return nil
}
