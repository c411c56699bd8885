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

type creditFixture struct {
	*merchantFixture
	credits *CreditService
}

func newCreditFixture() *creditFixture {
	mf := newMerchantFixture()
	return &creditFixture{
		merchantFixture: mf,
		credits:         NewCreditService(mf.merchants, mf.txs, mf.balances, fakeTxManager{}),
	}
}

func TestCreditServiceCreate(t *testing.T) {
	ctx := context.Background()
	tenant := uuid.New()

	t.Run("records payment and recomputes balance", func(t *testing.T) {
		f := newCreditFixture()
		opening := dec("500")
		merchant, err := f.service.Create(ctx, tenant, CreateMerchantRequest{
			Name:           "Ramesh",
			Mobile:         "9876543210",
			OpeningBalance: &opening,
		})
		require.NoError(t, err)

		f.items.add(tenant, merchant.ID, &billing.MerchantTrade{
			ItemID: uuid.New(), BillID: uuid.New(),
			Vegetable: "Tomato", Amount: dec("1000"), Date: time.Now(),
		})
		_, err = f.balances.Recompute(ctx, tenant, merchant.ID)
		require.NoError(t, err)

		entry, err := f.credits.Create(ctx, tenant, CreateCreditRequest{
			MerchantID:  merchant.ID,
			Amount:      dec("300"),
			PaymentMode: "Cash",
			Description: "part payment",
		})
		require.NoError(t, err)
		assert.Equal(t, "Cash", entry.PaymentMode)

		stored, err := f.merchants.FindByIDForTenant(ctx, tenant, merchant.ID)
		require.NoError(t, err)
		assert.True(t, stored.CurrentBalance.Equal(dec("1200")), "500 opening + 1000 trade - 300 credit")
	})

	t.Run("unknown merchant returns not found", func(t *testing.T) {
		f := newCreditFixture()
		_, err := f.credits.Create(ctx, tenant, CreateCreditRequest{
			MerchantID:  uuid.New(),
			Amount:      dec("100"),
			PaymentMode: "Cash",
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		f := newCreditFixture()
		merchant, err := f.service.Create(ctx, tenant, CreateMerchantRequest{
			Name:   "Ramesh",
			Mobile: "9876543210",
		})
		require.NoError(t, err)

		_, err = f.credits.Create(ctx, tenant, CreateCreditRequest{
			MerchantID:  merchant.ID,
			Amount:      dec("0"),
			PaymentMode: "Cash",
		})
		require.Error(t, err)
	})
}

func TestCreditServiceUpdate(t *testing.T) {
	ctx := context.Background()
	tenant := uuid.New()

	t.Run("revises amount and balance", func(t *testing.T) {
		f := newCreditFixture()
		opening := dec("500")
		merchant, err := f.service.Create(ctx, tenant, CreateMerchantRequest{
			Name:           "Ramesh",
			Mobile:         "9876543210",
			OpeningBalance: &opening,
		})
		require.NoError(t, err)

		entry, err := f.credits.Create(ctx, tenant, CreateCreditRequest{
			MerchantID:  merchant.ID,
			Amount:      dec("300"),
			PaymentMode: "Cash",
		})
		require.NoError(t, err)

		amount := dec("200")
		mode := "UPI"
		updated, err := f.credits.Update(ctx, tenant, entry.ID, UpdateCreditRequest{
			Amount:      &amount,
			PaymentMode: &mode,
		})
		require.NoError(t, err)
		assert.True(t, updated.Amount.Equal(dec("200")))
		assert.Equal(t, "UPI", updated.PaymentMode)

		stored, err := f.merchants.FindByIDForTenant(ctx, tenant, merchant.ID)
		require.NoError(t, err)
		assert.True(t, stored.CurrentBalance.Equal(dec("300")), "500 opening - 200 credit")
	})

	t.Run("opening entry is not editable", func(t *testing.T) {
		f := newCreditFixture()
		opening := dec("500")
		merchant, err := f.service.Create(ctx, tenant, CreateMerchantRequest{
			Name:           "Ramesh",
			Mobile:         "9876543210",
			OpeningBalance: &opening,
		})
		require.NoError(t, err)

		entry, err := f.txs.FindOpening(ctx, tenant, merchant.ID)
		require.NoError(t, err)

		amount := dec("100")
		_, err = f.credits.Update(ctx, tenant, entry.ID, UpdateCreditRequest{Amount: &amount})
		require.Error(t, err)
	})
}

func TestCreditServiceDelete(t *testing.T) {
	ctx := context.Background()
	tenant := uuid.New()

	t.Run("restores balance", func(t *testing.T) {
		f := newCreditFixture()
		opening := dec("500")
		merchant, err := f.service.Create(ctx, tenant, CreateMerchantRequest{
			Name:           "Ramesh",
			Mobile:         "9876543210",
			OpeningBalance: &opening,
		})
		require.NoError(t, err)

		entry, err := f.credits.Create(ctx, tenant, CreateCreditRequest{
			MerchantID:  merchant.ID,
			Amount:      dec("300"),
			PaymentMode: "Cash",
		})
		require.NoError(t, err)

		require.NoError(t, f.credits.Delete(ctx, tenant, entry.ID))

		stored, err := f.merchants.FindByIDForTenant(ctx, tenant, merchant.ID)
		require.NoError(t, err)
		assert.True(t, stored.CurrentBalance.Equal(dec("500")))
	})

	t.Run("opening entry is not deletable", func(t *testing.T) {
		f := newCreditFixture()
		opening := dec("500")
		merchant, err := f.service.Create(ctx, tenant, CreateMerchantRequest{
			Name:           "Ramesh",
			Mobile:         "9876543210",
			OpeningBalance: &opening,
		})
		require.NoError(t, err)

		entry, err := f.txs.FindOpening(ctx, tenant, merchant.ID)
		require.NoError(t, err)

		require.Error(t, f.credits.Delete(ctx, tenant, entry.ID))
	})
}
