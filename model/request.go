// file: model/request.go

package model

// SignupRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname" validate:"required,min=2,max=20"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateProfileRequest defines the payload for profile updates. Zero-value
// fields are left untouched.
type UpdateProfileRequest struct {
	Nickname string `json:"nickname" validate:"omitempty,min=2,max=20"`
	Picture  string `json:"picture" validate:"omitempty,max=255"`
	Password string `json:"password" validate:"omitempty,min=8"`
}
