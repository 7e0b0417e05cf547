package profile

import "github.com/centung-app/auth-api/internal/types"

// UpdateProfileRequest is a partial update; empty fields are left unchanged.
type UpdateProfileRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// UpdateUserParams carries the columns to update; nil means unchanged.
type UpdateUserParams struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// ProfileResponse echoes the claims decoded from the bearer token.
type ProfileResponse struct {
	Message string        `json:"message"`
	User    *types.Claims `json:"user"`
}

// UploadPhotoResponse returns the public URL of the stored photo.
type UploadPhotoResponse struct {
	Message  string `json:"message"`
	PhotoURL string `json:"photoUrl"`
}
