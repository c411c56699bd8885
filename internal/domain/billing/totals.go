package billing

import (
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/shared"
)

// Charges are the fixed bill-level deductions added on top of the item
// subtotal.
type Charges struct {
	Himmali      decimal.Decimal
	Bharai       decimal.Decimal
	MotorBhada   decimal.Decimal
	OtherCharges decimal.Decimal
}

// Total returns the sum of all charge components.
func (c Charges) Total() decimal.Decimal {
	return c.Himmali.Add(c.Bharai).Add(c.MotorBhada).Add(c.OtherCharges)
}

// Totals is the aggregate view over a bill's items and charges.
type Totals struct {
	TotalBags   int64
	TotalWeight decimal.Decimal
	Subtotal    decimal.Decimal
	GrandTotal  decimal.Decimal
}

// ComputeTotals folds a bill's items and charges into totals. An empty item
// list is valid and yields charge-only totals. Any negative input is a
// validation error; totals are never silently clamped.
func ComputeTotals(items []BillItem, charges Charges) (Totals, error) {
	if charges.Himmali.IsNegative() || charges.Bharai.IsNegative() ||
		charges.MotorBhada.IsNegative() || charges.OtherCharges.IsNegative() {
		return Totals{}, shared.NewValidationError("Charges cannot be negative")
	}

	totals := Totals{
		TotalWeight: decimal.Zero,
		Subtotal:    decimal.Zero,
	}
	for _, item := range items {
		if item.Bags < 0 {
			return Totals{}, shared.NewValidationError("Bags cannot be negative")
		}
		if item.Weight.IsNegative() {
			return Totals{}, shared.NewValidationError("Weight cannot be negative")
		}
		if item.Amount.IsNegative() {
			return Totals{}, shared.NewValidationError("Amount cannot be negative")
		}
		totals.TotalBags += item.Bags
		totals.TotalWeight = totals.TotalWeight.Add(item.Weight)
		totals.Subtotal = totals.Subtotal.Add(item.Amount)
	}
	totals.GrandTotal = totals.Subtotal.Add(charges.Total())
	return totals, nil
}
