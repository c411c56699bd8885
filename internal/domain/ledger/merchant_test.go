package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMerchant(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates merchant seeded with opening balance", func(t *testing.T) {
		merchant, err := NewMerchant(tenantID, "Suresh Traders", "Suresh & Sons", "9876543210", decimal.NewFromInt(500))

		require.NoError(t, err)
		assert.Equal(t, tenantID, merchant.TenantID)
		assert.Equal(t, "Suresh Traders", merchant.Name)
		assert.True(t, merchant.OpeningBalance.Equal(decimal.NewFromInt(500)))
		assert.True(t, merchant.CurrentBalance.Equal(decimal.NewFromInt(500)))
	})

	t.Run("fails with empty tenant", func(t *testing.T) {
		_, err := NewMerchant(uuid.Nil, "Suresh", "", "9876543210", decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewMerchant(tenantID, "", "", "9876543210", decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("fails with empty mobile", func(t *testing.T) {
		_, err := NewMerchant(tenantID, "Suresh", "", "", decimal.Zero)
		assert.Error(t, err)
	})
}

func TestMerchantUpdateDetails(t *testing.T) {
	tenantID := uuid.New()

	t.Run("empty fields keep current values", func(t *testing.T) {
		merchant, err := NewMerchant(tenantID, "Suresh", "Suresh & Sons", "9876543210", decimal.Zero)
		require.NoError(t, err)

		require.NoError(t, merchant.UpdateDetails("", "", "9123456789"))

		assert.Equal(t, "Suresh", merchant.Name)
		assert.Equal(t, "Suresh & Sons", merchant.BusinessName)
		assert.Equal(t, "9123456789", merchant.Mobile)
	})

	t.Run("rejects overlong name", func(t *testing.T) {
		merchant, err := NewMerchant(tenantID, "Suresh", "", "9876543210", decimal.Zero)
		require.NoError(t, err)

		long := make([]byte, 201)
		for i := range long {
			long[i] = 'a'
		}
		assert.Error(t, merchant.UpdateDetails(string(long), "", ""))
	})
}

func TestMerchantBalance(t *testing.T) {
	tenantID := uuid.New()

	t.Run("recomputed balance replaces the cached value", func(t *testing.T) {
		merchant, err := NewMerchant(tenantID, "Suresh", "", "9876543210", decimal.NewFromInt(500))
		require.NoError(t, err)

		merchant.ApplyRecomputedBalance(decimal.NewFromInt(1200))

		assert.True(t, merchant.CurrentBalance.Equal(decimal.NewFromInt(1200)))
		assert.True(t, merchant.OpeningBalance.Equal(decimal.NewFromInt(500)))
	})

	t.Run("revised opening balance does not touch current balance", func(t *testing.T) {
		merchant, err := NewMerchant(tenantID, "Suresh", "", "9876543210", decimal.NewFromInt(500))
		require.NoError(t, err)

		merchant.ReviseOpeningBalance(decimal.NewFromInt(800))

		assert.True(t, merchant.OpeningBalance.Equal(decimal.NewFromInt(800)))
		assert.True(t, merchant.CurrentBalance.Equal(decimal.NewFromInt(500)))
	})
}
