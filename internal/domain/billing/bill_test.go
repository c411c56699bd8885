package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBill(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates bill with valid fields", func(t *testing.T) {
		bill, err := NewBill(tenantID, "BILL-20250314150926-0042", "Ramesh", "9876543210", "Khedgaon", nil)

		require.NoError(t, err)
		assert.Equal(t, tenantID, bill.TenantID)
		assert.Equal(t, "BILL-20250314150926-0042", bill.BillNumber)
		assert.Equal(t, "Ramesh", bill.FarmerName)
		assert.Equal(t, "Khedgaon", bill.VillageName)
		assert.Empty(t, bill.Items)
		assert.True(t, bill.GrandTotal.IsZero())
	})

	t.Run("fails with empty tenant", func(t *testing.T) {
		_, err := NewBill(uuid.Nil, "BILL-1", "Ramesh", "", "Khedgaon", nil)
		assert.Error(t, err)
	})

	t.Run("fails with empty bill number", func(t *testing.T) {
		_, err := NewBill(tenantID, "", "Ramesh", "", "Khedgaon", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Bill number")
	})

	t.Run("fails with empty farmer name", func(t *testing.T) {
		_, err := NewBill(tenantID, "BILL-1", "", "", "Khedgaon", nil)
		assert.Error(t, err)
	})

	t.Run("fails with empty village name", func(t *testing.T) {
		_, err := NewBill(tenantID, "BILL-1", "Ramesh", "", "", nil)
		assert.Error(t, err)
	})
}

func TestBillAddItem(t *testing.T) {
	tenantID := uuid.New()

	newTestBill := func(t *testing.T) *Bill {
		bill, err := NewBill(tenantID, "BILL-20250314150926-0042", "Ramesh", "", "Khedgaon", nil)
		require.NoError(t, err)
		return bill
	}

	t.Run("appends item carrying tenant and bill id", func(t *testing.T) {
		bill := newTestBill(t)
		merchantID := uuid.New()

		item, err := bill.AddItem("Tomato", 5, d("250"), d("12"), d("3000"), &merchantID)

		require.NoError(t, err)
		assert.Equal(t, bill.ID, item.BillID)
		assert.Equal(t, tenantID, item.TenantID)
		assert.Equal(t, &merchantID, item.MerchantID)
		assert.Len(t, bill.Items, 1)
	})

	t.Run("accepts amount not derived from rate and weight", func(t *testing.T) {
		bill := newTestBill(t)

		// 250 * 12 = 3000, but a negotiated 2950 is stored as given.
		item, err := bill.AddItem("Tomato", 5, d("250"), d("12"), d("2950"), nil)

		require.NoError(t, err)
		assert.True(t, item.Amount.Equal(d("2950")))
	})

	t.Run("rejects empty vegetable", func(t *testing.T) {
		bill := newTestBill(t)
		_, err := bill.AddItem("", 5, d("250"), d("12"), d("3000"), nil)
		assert.Error(t, err)
	})

	t.Run("rejects negative values", func(t *testing.T) {
		bill := newTestBill(t)

		_, err := bill.AddItem("Tomato", -1, d("250"), d("12"), d("3000"), nil)
		assert.Error(t, err)

		_, err = bill.AddItem("Tomato", 5, d("-250"), d("12"), d("3000"), nil)
		assert.Error(t, err)

		_, err = bill.AddItem("Tomato", 5, d("250"), d("-12"), d("3000"), nil)
		assert.Error(t, err)

		_, err = bill.AddItem("Tomato", 5, d("250"), d("12"), d("-3000"), nil)
		assert.Error(t, err)
	})
}

func TestBillRecalculate(t *testing.T) {
	tenantID := uuid.New()

	t.Run("folds items and charges into totals", func(t *testing.T) {
		bill, err := NewBill(tenantID, "BILL-20250314150926-0042", "Ramesh", "", "Khedgaon", nil)
		require.NoError(t, err)

		_, err = bill.AddItem("Tomato", 5, d("250"), d("12"), d("3000"), nil)
		require.NoError(t, err)
		_, err = bill.AddItem("Onion", 3, d("150"), d("20"), d("3000"), nil)
		require.NoError(t, err)
		require.NoError(t, bill.SetCharges(d("50"), d("30"), d("100"), d("20")))

		require.NoError(t, bill.Recalculate())

		assert.Equal(t, int64(8), bill.TotalBags)
		assert.True(t, bill.TotalWeight.Equal(d("400")))
		assert.True(t, bill.Subtotal.Equal(d("6000")))
		assert.True(t, bill.GrandTotal.Equal(d("6200")))
	})

	t.Run("clear items resets totals on recalculate", func(t *testing.T) {
		bill, err := NewBill(tenantID, "BILL-20250314150926-0042", "Ramesh", "", "Khedgaon", nil)
		require.NoError(t, err)
		_, err = bill.AddItem("Tomato", 5, d("250"), d("12"), d("3000"), nil)
		require.NoError(t, err)
		require.NoError(t, bill.Recalculate())

		bill.ClearItems()
		require.NoError(t, bill.Recalculate())

		assert.Equal(t, int64(0), bill.TotalBags)
		assert.True(t, bill.Subtotal.IsZero())
		assert.True(t, bill.GrandTotal.IsZero())
	})

	t.Run("rejects negative charges", func(t *testing.T) {
		bill, err := NewBill(tenantID, "BILL-20250314150926-0042", "Ramesh", "", "Khedgaon", nil)
		require.NoError(t, err)

		err = bill.SetCharges(d("-1"), d("0"), d("0"), d("0"))
		assert.Error(t, err)
	})
}
