package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandi/backend/internal/domain/billing"
	"github.com/mandi/backend/internal/domain/shared"
)

// Walks the canonical merchant lifecycle: opening balance, a trade, a
// payment, then the trade reversed by bill deletion.
func TestBalanceServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	tenant := uuid.New()
	f := newMerchantFixture()

	opening := dec("500")
	merchant, err := f.service.Create(ctx, tenant, CreateMerchantRequest{
		Name:           "Ramesh",
		Mobile:         "9876543210",
		OpeningBalance: &opening,
	})
	require.NoError(t, err)
	assert.True(t, merchant.CurrentBalance.Equal(dec("500")))

	billID := uuid.New()
	f.items.add(tenant, merchant.ID, &billing.MerchantTrade{
		ItemID: uuid.New(), BillID: billID,
		Vegetable: "Tomato", Amount: dec("1000"), Date: time.Now(),
	})
	balance, err := f.balances.Recompute(ctx, tenant, merchant.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("1500")), "opening 500 + trade 1000")

	credit, err := NewCreditService(f.merchants, f.txs, f.balances, fakeTxManager{}).
		Create(ctx, tenant, CreateCreditRequest{
			MerchantID:  merchant.ID,
			Amount:      dec("300"),
			PaymentMode: "Cash",
		})
	require.NoError(t, err)
	require.NotNil(t, credit)

	stored, err := f.merchants.FindByIDForTenant(ctx, tenant, merchant.ID)
	require.NoError(t, err)
	assert.True(t, stored.CurrentBalance.Equal(dec("1200")), "1500 - 300 credit")

	// Deleting the bill removes its items; the recompute drops the trade.
	f.items.removeBill(billID)
	balance, err = f.balances.Recompute(ctx, tenant, merchant.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("200")), "500 opening - 300 credit")
}

func TestBalanceServiceRecomputeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tenant := uuid.New()
	f := newMerchantFixture()

	opening := dec("500")
	merchant, err := f.service.Create(ctx, tenant, CreateMerchantRequest{
		Name:           "Ramesh",
		Mobile:         "9876543210",
		OpeningBalance: &opening,
	})
	require.NoError(t, err)

	f.items.add(tenant, merchant.ID, &billing.MerchantTrade{
		ItemID: uuid.New(), BillID: uuid.New(),
		Vegetable: "Onion", Amount: dec("250"), Date: time.Now(),
	})

	first, err := f.balances.Recompute(ctx, tenant, merchant.ID)
	require.NoError(t, err)
	second, err := f.balances.Recompute(ctx, tenant, merchant.ID)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.True(t, second.Equal(dec("750")))
}

func TestBalanceServiceRecomputeAll(t *testing.T) {
	ctx := context.Background()
	tenant := uuid.New()
	f := newMerchantFixture()

	a, err := f.service.Create(ctx, tenant, CreateMerchantRequest{Name: "Ramesh", Mobile: "9876543210"})
	require.NoError(t, err)
	b, err := f.service.Create(ctx, tenant, CreateMerchantRequest{Name: "Suresh", Mobile: "9000000000"})
	require.NoError(t, err)

	f.items.add(tenant, a.ID, &billing.MerchantTrade{
		ItemID: uuid.New(), BillID: uuid.New(),
		Vegetable: "Tomato", Amount: dec("100"), Date: time.Now(),
	})
	f.items.add(tenant, b.ID, &billing.MerchantTrade{
		ItemID: uuid.New(), BillID: uuid.New(),
		Vegetable: "Onion", Amount: dec("200"), Date: time.Now(),
	})

	// Duplicates and nil IDs are skipped, not errors.
	err = f.balances.RecomputeAll(ctx, tenant, []uuid.UUID{a.ID, b.ID, a.ID, uuid.Nil})
	require.NoError(t, err)

	storedA, err := f.merchants.FindByIDForTenant(ctx, tenant, a.ID)
	require.NoError(t, err)
	storedB, err := f.merchants.FindByIDForTenant(ctx, tenant, b.ID)
	require.NoError(t, err)
	assert.True(t, storedA.CurrentBalance.Equal(dec("100")))
	assert.True(t, storedB.CurrentBalance.Equal(dec("200")))

	t.Run("unknown merchant fails the batch", func(t *testing.T) {
		err := f.balances.RecomputeAll(ctx, tenant, []uuid.UUID{uuid.New()})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
