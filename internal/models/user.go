package models

import (
	"time"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// ReservedUsername collides with the self-service account endpoint and may
// not be registered.
const ReservedUsername = "me"

// ValidRole reports whether the given string is a known role value.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        uint     `json:"-" gorm:"primaryKey"`
	Username  string   `json:"username" gorm:"uniqueIndex;not null;size:150"`
	Email     string   `json:"email" gorm:"uniqueIndex;not null;size:254"`
	FirstName string   `json:"first_name" gorm:"size:150"`
	LastName  string   `json:"last_name" gorm:"size:150"`
	Bio       string   `json:"bio"`
	Role      UserRole `json:"role" gorm:"not null;size:9;default:user"`

	// Superusers bypass role checks regardless of the stored role value.
	IsSuperuser bool `json:"-" gorm:"not null;default:false"`

	// ConfirmationSeq rotates on every signup request; confirmation codes
	// are derived from it, so issuing a new code invalidates the old one.
	ConfirmationSeq uint64 `json:"-" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsAdminOrSuperuser reports whether the user holds full administrative power.
func (u *User) IsAdminOrSuperuser() bool {
	return u.IsSuperuser || u.Role == RoleAdmin
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

// IsStaff reports whether the user may override ownership on reviews/comments.
func (u *User) IsStaff() bool {
	return u.IsAdminOrSuperuser() || u.IsModerator()
}
