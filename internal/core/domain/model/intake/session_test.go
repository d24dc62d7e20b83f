package intake_test

import (
	"strings"
	"testing"
	"time"

	"workshop/internal/core/domain/model/intake"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var started = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newSession(t *testing.T) *intake.Session {
	t.Helper()
	s, err := intake.NewSession(100, "Ivan Petrov", started)
	require.NoError(t, err)
	return s
}

func apply(t *testing.T, s *intake.Session, inputs ...intake.Input) {
	t.Helper()
	for _, in := range inputs {
		require.NoError(t, s.Apply(in), "input %s at step %s", in.Kind, s.Step())
	}
}

func TestSession_FullWizard(t *testing.T) {
	t.Run("should collect every field in order", func(t *testing.T) {
		s := newSession(t)

		apply(t, s,
			intake.Selection("coat"),
			intake.Photo("file-1"),
			intake.Text("  torn lining "),
			intake.Text("Vanya"),
			intake.Text("+7 (900) 123-45-67"),
		)
		require.True(t, s.CanConfirm())
		apply(t, s, intake.Confirm())

		assert.Equal(t, intake.StepCreated, s.Step())
		assert.Equal(t, intake.Draft{
			Service:     order.ServiceCoat,
			PhotoRef:    "file-1",
			Description: "torn lining",
			ClientName:  "Vanya",
			ClientPhone: "+7 (900) 123-45-67",
		}, s.Draft())
	})

	t.Run("should default name to display name when every optional step is skipped", func(t *testing.T) {
		s := newSession(t)

		apply(t, s, intake.Selection("dress"), intake.Skip(), intake.Skip(), intake.Skip(), intake.Skip(), intake.Confirm())

		draft := s.Draft()
		assert.Equal(t, intake.StepCreated, s.Step())
		assert.Equal(t, "Ivan Petrov", draft.ClientName)
		assert.Empty(t, draft.Description)
		assert.Empty(t, draft.PhotoRef)
		assert.Empty(t, draft.ClientPhone)
		assert.Equal(t, "Ivan Petrov", draft.Details().ClientName)
	})

	t.Run("should fall back to a generic name without display name", func(t *testing.T) {
		s, err := intake.NewSession(100, " ", started)
		require.NoError(t, err)

		apply(t, s, intake.Selection("fur"), intake.Skip(), intake.Skip(), intake.Skip())

		assert.Equal(t, "Client", s.Draft().ClientName)
	})
}

func TestSession_RejectsWrongInput(t *testing.T) {
	t.Run("should refuse skipping service selection", func(t *testing.T) {
		s := newSession(t)

		err := s.Apply(intake.Skip())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, intake.StepSelectService, s.Step())
	})

	t.Run("should refuse text where a photo is expected", func(t *testing.T) {
		s := newSession(t)
		apply(t, s, intake.Selection("pants"))

		err := s.Apply(intake.Text("here is my photo"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, intake.StepSendPhoto, s.Step())
	})

	t.Run("should refuse unknown service", func(t *testing.T) {
		s := newSession(t)

		require.ErrorIs(t, s.Apply(intake.Selection("shoes")), errs.ErrValueIsInvalid)
	})

	t.Run("should refuse confirm before the last step", func(t *testing.T) {
		s := newSession(t)
		apply(t, s, intake.Selection("pants"))

		require.ErrorIs(t, s.Apply(intake.Confirm()), errs.ErrValueIsInvalid)
		assert.False(t, s.CanConfirm())
	})

	t.Run("should refuse skip on confirm step", func(t *testing.T) {
		s := newSession(t)
		apply(t, s, intake.Selection("pants"), intake.Skip(), intake.Skip(), intake.Skip(), intake.Skip())

		require.ErrorIs(t, s.Apply(intake.Skip()), errs.ErrValueIsInvalid)
		assert.Equal(t, intake.StepConfirm, s.Step())
	})

	t.Run("should keep step on blank or oversized text", func(t *testing.T) {
		s := newSession(t)
		apply(t, s, intake.Selection("pants"), intake.Skip())

		require.ErrorIs(t, s.Apply(intake.Text("   ")), errs.ErrValueIsRequired)
		require.ErrorIs(t, s.Apply(intake.Text(strings.Repeat("a", intake.MaxDescriptionLength+1))), errs.ErrValueIsOutOfRange)
		assert.Equal(t, intake.StepEnterDescription, s.Step())
	})

	t.Run("should validate phone numbers", func(t *testing.T) {
		s := newSession(t)
		apply(t, s, intake.Selection("pants"), intake.Skip(), intake.Skip(), intake.Skip())

		require.ErrorIs(t, s.Apply(intake.Text("call me")), errs.ErrValueIsInvalid)
		require.ErrorIs(t, s.Apply(intake.Text("123")), errs.ErrValueIsOutOfRange)
		require.NoError(t, s.Apply(intake.Text("89001234567")))
		assert.Equal(t, intake.StepConfirm, s.Step())
	})
}

func TestSession_Cancel(t *testing.T) {
	steps := [][]intake.Input{
		{},
		{intake.Selection("coat")},
		{intake.Selection("coat"), intake.Photo("f")},
		{intake.Selection("coat"), intake.Photo("f"), intake.Text("d")},
		{intake.Selection("coat"), intake.Photo("f"), intake.Text("d"), intake.Text("n")},
		{intake.Selection("coat"), intake.Photo("f"), intake.Text("d"), intake.Text("n"), intake.Text("12345")},
	}

	for _, prefix := range steps {
		s := newSession(t)
		apply(t, s, prefix...)
		from := s.Step()

		t.Run("should cancel from "+from.String(), func(t *testing.T) {
			require.NoError(t, s.Apply(intake.Cancel()))

			assert.Equal(t, intake.StepCancelled, s.Step())
			assert.Equal(t, intake.Draft{}, s.Draft())
			assert.False(t, s.CanConfirm())
		})
	}

	t.Run("should refuse input after the session closed", func(t *testing.T) {
		s := newSession(t)
		apply(t, s, intake.Cancel())

		require.ErrorIs(t, s.Apply(intake.Selection("coat")), intake.ErrSessionClosed)
		require.ErrorIs(t, s.Apply(intake.Cancel()), intake.ErrSessionClosed)
	})
}

func TestNewSession(t *testing.T) {
	t.Run("should start at service selection", func(t *testing.T) {
		s := newSession(t)

		assert.Equal(t, intake.StepSelectService, s.Step())
		assert.Equal(t, int64(100), s.UserID())
		assert.Equal(t, started, s.StartedAt())
	})

	t.Run("should reject invalid user", func(t *testing.T) {
		_, err := intake.NewSession(0, "x", started)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject zero value session", func(t *testing.T) {
		var s intake.Session

		require.ErrorIs(t, s.Apply(intake.Cancel()), intake.ErrSessionIsNotConstructed)
	})
}
