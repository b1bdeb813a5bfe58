package models

import (
	"time"
)

// ===== RESPONSE SHAPES =====

// ErrorResponse is the generic error payload returned by handlers.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// FieldErrorResponse carries field-level validation failures.
type FieldErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// UserResponse is the public shape of a user record.
type UserResponse struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Bio       string   `json:"bio"`
	Role      UserRole `json:"role"`
}

// NewUserResponse shapes a user for API output.
func NewUserResponse(u *User) *UserResponse {
	return &UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}

// ReviewResponse renders the author by username rather than by id.
type ReviewResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

// NewReviewResponse shapes a review for API output. The review's Author
// association must be loaded.
func NewReviewResponse(r *Review) *ReviewResponse {
	return &ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

// CommentResponse renders the author by username rather than by id.
type CommentResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

// NewCommentResponse shapes a comment for API output. The comment's Author
// association must be loaded.
func NewCommentResponse(c *Comment) *CommentResponse {
	return &CommentResponse{
		ID:      c.ID,
		Text:    c.Text,
		Author:  c.Author.Username,
		PubDate: c.PubDate,
	}
}

// TokenResponse carries a freshly minted access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// SignupResponse echoes the accepted signup payload. It is identical whether
// or not the account already existed.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
