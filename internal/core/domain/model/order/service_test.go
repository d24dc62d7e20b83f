package order_test

import (
	"testing"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceCategory(t *testing.T) {
	t.Run("should accept every listed category", func(t *testing.T) {
		for _, category := range order.ServiceCategories() {
			parsed, err := order.ParseServiceCategory(string(category))

			require.NoError(t, err)
			assert.Equal(t, category, parsed)
			assert.NotEqual(t, string(category), parsed.Title())
		}
	})

	t.Run("should reject unknown category", func(t *testing.T) {
		_, err := order.ParseServiceCategory("shoes")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
