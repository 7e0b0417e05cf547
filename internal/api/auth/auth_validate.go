package auth

import (
	"regexp"
	"unicode"

	"github.com/centung-app/auth-api/internal/types"
)

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateUsername enforces 3-20 characters, alphanumeric plus ._-
func ValidateUsername(username string) error {
	if len(username) < 3 || len(username) > 20 {
		return types.NewValidationError("username", "must be 3-20 characters")
	}
	if !usernameRegex.MatchString(username) {
		return types.NewValidationError("username", "may only contain letters, digits, '.', '_' and '-'")
	}
	return nil
}

// ValidateEmail checks standard email syntax.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return types.NewValidationError("email", "must be a valid email address")
	}
	return nil
}

// ValidatePassword enforces a minimum of 8 characters with at least one
// uppercase letter, one lowercase letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return types.NewValidationError("password", "must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return types.NewValidationError("password", "must contain uppercase, lowercase and digit characters")
	}
	return nil
}
