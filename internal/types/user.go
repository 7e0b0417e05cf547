package types

import "time"

// UserAuth represents the core user entity in the domain.
type UserAuth struct {
	ID           string    `json:"id" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"` // Unique identifier (UUID).
	Username     string    `json:"username" example:"alice01"`                        // Unique username.
	Email        string    `json:"email" example:"alice@example.com"`                 // Unique email address.
	Password     string    `json:"-"`                                                 // Hashed password (never exposed).
	ProfilePhoto *string   `json:"profile_photo,omitempty"`                           // Public URL of the profile photo, if uploaded.
	SessionToken string    `json:"-"`                                                 // Last issued token, cached server-side.
	CreatedAt    time.Time `json:"created_at"`                                        // Timestamp when the user was created.
	UpdatedAt    time.Time `json:"updated_at"`                                        // Timestamp when the user was last updated.
}

// UserSummary is the minimal public view returned by login.
type UserSummary struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
