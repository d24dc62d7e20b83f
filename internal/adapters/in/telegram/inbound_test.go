package telegram_test

import (
	"testing"

	"workshop/internal/adapters/in/telegram"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromUpdate(t *testing.T) {
	t.Run("should split a command addressed to the bot", func(t *testing.T) {
		in, ok := telegram.FromUpdate(textUpdate(1, 42, "/Orders@workshop_bot  accepted "))

		require.True(t, ok)
		assert.Equal(t, int64(42), in.UserID)
		assert.Equal(t, "orders", in.Command)
		assert.Equal(t, "accepted", in.Args)
		assert.True(t, in.IsCommand())
		assert.False(t, in.IsCallback())
	})

	t.Run("should keep plain text as input", func(t *testing.T) {
		in, ok := telegram.FromUpdate(textUpdate(1, 42, "  torn sleeve "))

		require.True(t, ok)
		assert.Equal(t, "torn sleeve", in.Text)
		assert.False(t, in.IsCommand())
	})

	t.Run("should take the largest photo", func(t *testing.T) {
		update := textUpdate(1, 42, "")
		update.Message.Photo = []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}}

		in, ok := telegram.FromUpdate(update)

		require.True(t, ok)
		assert.Equal(t, "large", in.PhotoRef)
	})

	t.Run("should answer callbacks in the private chat of the sender", func(t *testing.T) {
		in, ok := telegram.FromUpdate(tgbotapi.Update{
			CallbackQuery: &tgbotapi.CallbackQuery{
				ID:   "cb",
				From: &tgbotapi.User{ID: 7, FirstName: "Anna", LastName: "K"},
				Data: "od:3",
			},
		})

		require.True(t, ok)
		assert.Equal(t, int64(7), in.ChatID)
		assert.Equal(t, "Anna K", in.DisplayName)
		assert.Equal(t, "od:3", in.CallbackData)
		assert.True(t, in.IsCallback())
	})

	t.Run("should skip other updates", func(t *testing.T) {
		_, ok := telegram.FromUpdate(tgbotapi.Update{UpdateID: 9})

		assert.False(t, ok)
	})
}
