package user_test

import (
	"testing"

	"workshop/internal/core/domain/model/user"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("should create active non admin user", func(t *testing.T) {
		u, err := user.NewUser(10, "  Maria ")

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.Equal(t, int64(10), u.ID())
		assert.Equal(t, "Maria", u.DisplayName())
		assert.True(t, u.CanPlaceOrders())
		assert.True(t, u.CanReceiveBroadcasts())
		assert.False(t, u.IsAdmin())
	})

	t.Run("should reject non positive id", func(t *testing.T) {
		_, err := user.NewUser(0, "Maria")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreUser(t *testing.T) {
	t.Run("should gate ordering and broadcasts on blocked flag", func(t *testing.T) {
		u, err := user.RestoreUser(10, "Maria", "+7 900", true, true)

		require.NoError(t, err)
		assert.True(t, u.IsBlocked())
		assert.True(t, u.IsAdmin())
		assert.Equal(t, "+7 900", u.Phone())
		assert.False(t, u.CanPlaceOrders())
		assert.False(t, u.CanReceiveBroadcasts())
	})
}

func TestUser_Validate(t *testing.T) {
	var u user.User

	require.ErrorIs(t, u.Validate(), user.ErrUserIsNotConstructed)
}
