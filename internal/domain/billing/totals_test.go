package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals(t *testing.T) {
	t.Run("sums bags weight and amount across items", func(t *testing.T) {
		items := []BillItem{
			{Vegetable: "Tomato", Bags: 5, Weight: d("250.5"), Rate: d("12"), Amount: d("3006")},
			{Vegetable: "Onion", Bags: 3, Weight: d("149.5"), Rate: d("20"), Amount: d("2990")},
		}
		charges := Charges{Himmali: d("50"), Bharai: d("30"), MotorBhada: d("100"), OtherCharges: d("20")}

		totals, err := ComputeTotals(items, charges)

		require.NoError(t, err)
		assert.Equal(t, int64(8), totals.TotalBags)
		assert.True(t, totals.TotalWeight.Equal(d("400")), "weight %s", totals.TotalWeight)
		assert.True(t, totals.Subtotal.Equal(d("5996")), "subtotal %s", totals.Subtotal)
		assert.True(t, totals.GrandTotal.Equal(d("6196")), "grand total %s", totals.GrandTotal)
	})

	t.Run("empty item list yields charge-only totals", func(t *testing.T) {
		totals, err := ComputeTotals(nil, Charges{Himmali: d("25")})

		require.NoError(t, err)
		assert.Equal(t, int64(0), totals.TotalBags)
		assert.True(t, totals.TotalWeight.IsZero())
		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.GrandTotal.Equal(d("25")))
	})

	t.Run("grand total equals subtotal plus charges", func(t *testing.T) {
		items := []BillItem{
			{Vegetable: "Potato", Bags: 10, Weight: d("500"), Rate: d("8"), Amount: d("4000")},
		}
		charges := Charges{Himmali: d("10"), Bharai: d("20"), MotorBhada: d("30"), OtherCharges: d("40")}

		totals, err := ComputeTotals(items, charges)

		require.NoError(t, err)
		assert.True(t, totals.GrandTotal.Equal(totals.Subtotal.Add(charges.Total())))
	})

	t.Run("rejects negative item values", func(t *testing.T) {
		_, err := ComputeTotals([]BillItem{{Vegetable: "Tomato", Bags: -1}}, Charges{})
		assert.Error(t, err)

		_, err = ComputeTotals([]BillItem{{Vegetable: "Tomato", Weight: d("-1")}}, Charges{})
		assert.Error(t, err)

		_, err = ComputeTotals([]BillItem{{Vegetable: "Tomato", Amount: d("-5")}}, Charges{})
		assert.Error(t, err)
	})

	t.Run("rejects negative charges", func(t *testing.T) {
		_, err := ComputeTotals(nil, Charges{MotorBhada: d("-100")})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "negative")
	})
}
