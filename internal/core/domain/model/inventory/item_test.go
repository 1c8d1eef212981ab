package inventory_test

import (
	"testing"
	"time"

	"ferryops/internal/core/domain/model/inventory"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	now := time.Now()

	t.Run("should create an item", func(t *testing.T) {
		it, err := inventory.NewItem(kernel.NewUUID(), " Diesel ", "Fuel", "litres", 40, 50, now)

		require.NoError(t, err)
		require.NoError(t, it.Validate())
		assert.Equal(t, "Diesel", it.Name())
		assert.Equal(t, 40, it.CurrentStock())
		assert.True(t, it.IsBelowReorderLevel())
	})

	t.Run("should require name category and unit", func(t *testing.T) {
		_, err := inventory.NewItem(kernel.NewUUID(), "", " ", "", 0, -1, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		for _, field := range []string{"name", "category", "unit", "reorder_level"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("should reject negative stock", func(t *testing.T) {
		_, err := inventory.NewItem(kernel.NewUUID(), "Diesel", "Fuel", "litres", -1, 0, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestItem_Update(t *testing.T) {
	it, err := inventory.NewItem(kernel.NewUUID(), "Diesel", "Fuel", "litres", 100, 50, time.Now())
	require.NoError(t, err)

	t.Run("should keep stock when editing", func(t *testing.T) {
		require.NoError(t, it.Update("Marine Diesel", "Fuel", "litres", 120))

		assert.Equal(t, "Marine Diesel", it.Name())
		assert.Equal(t, 120, it.ReorderLevel())
		assert.Equal(t, 100, it.CurrentStock())
		assert.True(t, it.IsBelowReorderLevel())
	})

	t.Run("should leave item unchanged on invalid input", func(t *testing.T) {
		err := it.Update("", "Fuel", "litres", 10)

		require.Error(t, err)
		assert.Equal(t, "Marine Diesel", it.Name())
		assert.Equal(t, 120, it.ReorderLevel())
	})
}
