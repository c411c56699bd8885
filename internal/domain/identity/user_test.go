package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates account with hashed password", func(t *testing.T) {
		user, err := NewUser("Patil Adhat", "patil@example.com", "9876543210", "APMC Yard, Nashik", "Password123", []string{"Anil", "Sunil"})

		require.NoError(t, err)
		assert.Equal(t, "Patil Adhat", user.CompanyName)
		assert.Equal(t, "patil@example.com", user.Email)
		assert.NotEqual(t, "Password123", user.PasswordHash)
		assert.Len(t, user.Partners, 2)
		assert.True(t, user.VerifyPassword("Password123"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		user, err := NewUser("Patil Adhat", "  Patil@Example.COM ", "9876543210", "", "Password123", nil)

		require.NoError(t, err)
		assert.Equal(t, "patil@example.com", user.Email)
	})

	t.Run("drops blank partner entries", func(t *testing.T) {
		user, err := NewUser("Patil Adhat", "patil@example.com", "9876543210", "", "Password123", []string{" Anil ", "", "  "})

		require.NoError(t, err)
		assert.Equal(t, []string{"Anil"}, user.Partners)
	})

	t.Run("rejects more than ten partners", func(t *testing.T) {
		partners := make([]string, MaxPartners+1)
		for i := range partners {
			partners[i] = "Partner"
		}
		_, err := NewUser("Patil Adhat", "patil@example.com", "9876543210", "", "Password123", partners)
		assert.Error(t, err)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser("Patil Adhat", "not-an-email", "9876543210", "", "Password123", nil)
		assert.Error(t, err)
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("Patil Adhat", "patil@example.com", "9876543210", "", "short", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("fails with empty company name", func(t *testing.T) {
		_, err := NewUser("  ", "patil@example.com", "9876543210", "", "Password123", nil)
		assert.Error(t, err)
	})

	t.Run("fails with overlong company name", func(t *testing.T) {
		_, err := NewUser(strings.Repeat("a", 201), "patil@example.com", "9876543210", "", "Password123", nil)
		assert.Error(t, err)
	})
}

func TestUserUpdateProfile(t *testing.T) {
	t.Run("empty fields keep current values", func(t *testing.T) {
		user, err := NewUser("Patil Adhat", "patil@example.com", "9876543210", "Nashik", "Password123", nil)
		require.NoError(t, err)

		require.NoError(t, user.UpdateProfile("", "9123456789", ""))

		assert.Equal(t, "Patil Adhat", user.CompanyName)
		assert.Equal(t, "9123456789", user.Mobile)
		assert.Equal(t, "Nashik", user.Address)
	})
}

func TestUserChangePassword(t *testing.T) {
	t.Run("requires the current password", func(t *testing.T) {
		user, err := NewUser("Patil Adhat", "patil@example.com", "9876543210", "", "Password123", nil)
		require.NoError(t, err)

		assert.Error(t, user.ChangePassword("wrong", "NewPassword1"))
		require.NoError(t, user.ChangePassword("Password123", "NewPassword1"))
		assert.True(t, user.VerifyPassword("NewPassword1"))
	})
}
