package kernel_test

import (
	"testing"
	"time"

	"workshop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestSystemClock_Now(t *testing.T) {
	t.Run("should return UTC time", func(t *testing.T) {
		now := kernel.SystemClock{}.Now()

		assert.Equal(t, time.UTC, now.Location())
		assert.WithinDuration(t, time.Now(), now, time.Second)
	})
}

func TestManualClock(t *testing.T) {
	start := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	t.Run("should stay put until moved", func(t *testing.T) {
		clock := kernel.NewManualClock(start)

		assert.Equal(t, start, clock.Now())
		assert.Equal(t, start, clock.Now())
	})

	t.Run("should advance by duration", func(t *testing.T) {
		clock := kernel.NewManualClock(start)

		got := clock.Advance(72 * time.Hour)

		assert.Equal(t, start.Add(72*time.Hour), got)
		assert.Equal(t, got, clock.Now())
	})

	t.Run("should normalise to UTC on set", func(t *testing.T) {
		clock := kernel.NewManualClock(start)
		moscow := time.FixedZone("MSK", 3*60*60)

		clock.Set(time.Date(2025, 2, 1, 12, 0, 0, 0, moscow))

		assert.Equal(t, time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC), clock.Now())
	})
}
