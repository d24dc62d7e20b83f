package order_test

import (
	"fmt"
	"testing"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	t.Run("should render persisted identifiers", func(t *testing.T) {
		expected := map[order.Status]string{
			order.New:        "new",
			order.Accepted:   "accepted",
			order.InProgress: "in_progress",
			order.Completed:  "completed",
			order.Issued:     "issued",
			order.Cancelled:  "cancelled",
			order.Spam:       "spam",
		}

		for status, str := range expected {
			assert.Equal(t, str, status.String())
		}
	})

	t.Run("should render invalid values as unknown", func(t *testing.T) {
		assert.Equal(t, "unknown", order.Unknown.String())
		assert.Equal(t, "unknown", order.Status(99).String())
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should round trip every valid status", func(t *testing.T) {
		for _, status := range order.Statuses() {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown identifiers", func(t *testing.T) {
		for _, raw := range []string{"", "unknown", "all", "New", "in progress"} {
			_, err := order.ParseStatus(raw)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should reject Unknown and out of range values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(8)} {
			err := status.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestStatus_TransitionGraph(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.New:        {order.Accepted, order.Cancelled},
		order.Accepted:   {order.InProgress, order.Cancelled},
		order.InProgress: {order.Completed, order.Cancelled},
		order.Completed:  {order.Issued},
	}

	for _, from := range order.Statuses() {
		for _, to := range order.Statuses() {
			expected := false
			for _, candidate := range allowed[from] {
				if candidate == to {
					expected = true
				}
			}

			t.Run(fmt.Sprintf("should %s from %s to %s", map[bool]string{true: "allow", false: "deny"}[expected], from, to), func(t *testing.T) {
				next, err := from.TransitionTo(to)

				assert.Equal(t, expected, from.CanTransitionTo(to))
				if expected {
					require.NoError(t, err)
					assert.Equal(t, to, next)
					return
				}
				require.ErrorIs(t, err, errs.ErrConflict)
				assert.Equal(t, from, next)
			})
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should mark issued cancelled and spam as terminal", func(t *testing.T) {
		assert.True(t, order.Issued.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
		assert.True(t, order.Spam.IsTerminal())
	})

	t.Run("should keep working statuses open", func(t *testing.T) {
		for _, status := range []order.Status{order.New, order.Accepted, order.InProgress, order.Completed} {
			assert.False(t, status.IsTerminal(), status.String())
			assert.NotEmpty(t, status.AllowedTargets())
		}
	})

	t.Run("should not treat Unknown as terminal", func(t *testing.T) {
		assert.False(t, order.Unknown.IsTerminal())
	})
}

func TestStatus_TransitionToInvalidTarget(t *testing.T) {
	_, err := order.New.TransitionTo(order.Unknown)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_AllowedTargetsIsACopy(t *testing.T) {
	targets := order.New.AllowedTargets()
	targets[0] = order.Issued

	assert.Equal(t, []order.Status{order.Accepted, order.Cancelled}, order.New.AllowedTargets())
}
