package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/centung-app/auth-api/internal/types"
)

func TestValidateUsername(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, ValidateUsername("alice01"))
		assert.NoError(t, ValidateUsername("a.b_c-d"))
		assert.NoError(t, ValidateUsername("abc"))
	})

	t.Run("TooShort", func(t *testing.T) {
		err := ValidateUsername("ab")
		var vErr *types.ValidationError
		assert.True(t, errors.As(err, &vErr))
		assert.Equal(t, "username", vErr.Field)
	})

	t.Run("TooLong", func(t *testing.T) {
		err := ValidateUsername("abcdefghijklmnopqrstu") // 21 chars
		assert.Error(t, err)
	})

	t.Run("InvalidCharset", func(t *testing.T) {
		err := ValidateUsername("alice!01")
		var vErr *types.ValidationError
		assert.True(t, errors.As(err, &vErr))
		assert.Equal(t, "username", vErr.Field)
	})
}

func TestValidateEmail(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, ValidateEmail("a@example.com"))
		assert.NoError(t, ValidateEmail("first.last+tag@sub.example.co"))
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, email := range []string{"", "plain", "missing@tld", "@example.com", "a b@example.com"} {
			err := ValidateEmail(email)
			var vErr *types.ValidationError
			assert.True(t, errors.As(err, &vErr), "expected validation error for %q", email)
			assert.Equal(t, "email", vErr.Field)
		}
	})
}

func TestValidatePassword(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, ValidatePassword("Passw0rd"))
		assert.NoError(t, ValidatePassword("Passw0rd!"))
	})

	t.Run("TooShort", func(t *testing.T) {
		assert.Error(t, ValidatePassword("Pw0rd"))
	})

	t.Run("MissingCharacterClass", func(t *testing.T) {
		assert.Error(t, ValidatePassword("password1")) // no uppercase
		assert.Error(t, ValidatePassword("PASSWORD1")) // no lowercase
		assert.Error(t, ValidatePassword("Password!")) // no digit
	})
}
