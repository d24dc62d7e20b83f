package cmd_test

import (
	"testing"
	"time"

	"workshop/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "123:abc")

		cfg, err := cmd.LoadConfig("testdata/missing.env")

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, 50*time.Millisecond, cfg.BroadcastDelay)
		assert.Equal(t, "@every 1h", cfg.SweepSchedule)
		assert.Equal(t, 72*time.Hour, cfg.SweepOptions().ReminderCooldown)
		assert.Equal(t, 10, cfg.BroadcastOptions().ProgressEvery)
		assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=workshop sslmode=disable", cfg.DSN())
	})

	t.Run("should parse administrator ids and keywords", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "123:abc")
		t.Setenv("ADMIN_IDS", "42,7")
		t.Setenv("SPAM_KEYWORDS", "casino,crypto")

		cfg, err := cmd.LoadConfig("testdata/missing.env")

		require.NoError(t, err)
		assert.Equal(t, []int64{42, 7}, cfg.AdminIDs)
		assert.Equal(t, []string{"casino", "crypto"}, cfg.SpamKeywords)
	})

	t.Run("should require the bot token", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "")

		_, err := cmd.LoadConfig("testdata/missing.env")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "BOT_TOKEN")
	})

	t.Run("should reject non-positive ages", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "123:abc")
		t.Setenv("REMINDER_AGE", "0s")

		_, err := cmd.LoadConfig("testdata/missing.env")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "REMINDER_AGE must be positive")
	})
}
