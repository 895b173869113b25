package metering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsageType(t *testing.T) {
	t.Run("creates valid usage type", func(t *testing.T) {
		ut, err := NewUsageType("electricity", "kWh", 1.5)

		require.NoError(t, err)
		assert.Equal(t, "electricity", ut.Name)
		assert.Equal(t, "kWh", ut.Unit)
		assert.Equal(t, 1.5, ut.Factor)
		assert.Zero(t, ut.ID)
		assert.NotZero(t, ut.CreatedAt)
	})

	t.Run("allows negative factor", func(t *testing.T) {
		ut, err := NewUsageType("credit", "EUR", -1)

		require.NoError(t, err)
		assert.Equal(t, -1.0, ut.Factor)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		ut, err := NewUsageType("", "kWh", 1)

		assert.Error(t, err)
		assert.Nil(t, ut)
		assert.Contains(t, err.Error(), "Name cannot be empty")
	})

	t.Run("fails with empty unit", func(t *testing.T) {
		ut, err := NewUsageType("water", "  ", 1)

		assert.Error(t, err)
		assert.Nil(t, ut)
		assert.Contains(t, err.Error(), "Unit cannot be empty")
	})

	t.Run("fails with overlong unit", func(t *testing.T) {
		_, err := NewUsageType("water", strings.Repeat("m", 51), 1)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 50 characters")
	})
}

func TestUsageTypeUpdateDetails(t *testing.T) {
	ut, err := NewUsageType("electricity", "kWh", 1.5)
	require.NoError(t, err)

	t.Run("updates all fields", func(t *testing.T) {
		err := ut.UpdateDetails("gas", "m3", 0.75)

		require.NoError(t, err)
		assert.Equal(t, "gas", ut.Name)
		assert.Equal(t, "m3", ut.Unit)
		assert.Equal(t, 0.75, ut.Factor)
	})

	t.Run("rejects empty name and keeps previous values", func(t *testing.T) {
		err := ut.UpdateDetails("", "m3", 1)

		assert.Error(t, err)
		assert.Equal(t, "gas", ut.Name)
	})
}
