package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewUser(t *testing.T) {
	t.Run("valid user verifies its password", func(t *testing.T) {
		user, err := NewUser(UserConfig{
			ID:            uuid.New(),
			Username:      "maze_smith",
			PlainPassword: "correct-horse-battery-staple",
		})
		assert.NoError(t, err)
		assert.True(t, user.VerifyPassword("correct-horse-battery-staple"))
		assert.False(t, user.VerifyPassword("wrong"))
		assert.NotEqual(t, "correct-horse-battery-staple", user.PasswordHash)
	})

	t.Run("rejects invalid usernames", func(t *testing.T) {
		for _, username := range []string{"ab", "has space", "way_too_long_username_here", "bad!chars"} {
			_, err := NewUser(UserConfig{
				ID:            uuid.New(),
				Username:      username,
				PlainPassword: "correct-horse-battery-staple",
			})
			assert.Error(t, err, "username %q should be rejected", username)
		}
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		_, err := NewUser(UserConfig{
			ID:            uuid.New(),
			Username:      "maze_smith",
			PlainPassword: "password1",
		})
		assert.Error(t, err)
	})
}
