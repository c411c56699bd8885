package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/shared"
)

// BillItem is one vegetable line within a bill, optionally tied to a
// merchant. Amount is trusted as supplied by the caller and is NOT derived
// from rate x weight; only non-negativity is enforced.
type BillItem struct {
	ID         uuid.UUID
	BillID     uuid.UUID
	TenantID   uuid.UUID
	Vegetable  string
	Bags       int64
	Weight     decimal.Decimal
	Rate       decimal.Decimal
	Amount     decimal.Decimal
	MerchantID *uuid.UUID
	CreatedAt  time.Time
}

// Bill is one farmer delivery event. It owns its items: they are created
// with the bill and replaced wholesale on update.
type Bill struct {
	shared.TenantAggregateRoot
	BillNumber   string
	FarmerName   string
	FarmerMobile string
	VillageName  string
	MerchantID   *uuid.UUID // filter hint only; items carry their own merchant link
	Items        []BillItem

	TotalBags   int64
	TotalWeight decimal.Decimal

	Himmali      decimal.Decimal
	Bharai       decimal.Decimal
	MotorBhada   decimal.Decimal
	OtherCharges decimal.Decimal

	Subtotal   decimal.Decimal
	GrandTotal decimal.Decimal
}

// NewBill creates a bill shell without items. The bill number is immutable
// after creation.
func NewBill(tenantID uuid.UUID, billNumber, farmerName, farmerMobile, villageName string, merchantID *uuid.UUID) (*Bill, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if billNumber == "" {
		return nil, shared.NewValidationError("Bill number cannot be empty")
	}
	if len(billNumber) > 50 {
		return nil, shared.NewValidationError("Bill number cannot exceed 50 characters")
	}
	if farmerName == "" {
		return nil, shared.NewValidationError("Farmer name cannot be empty")
	}
	if villageName == "" {
		return nil, shared.NewValidationError("Village name cannot be empty")
	}

	return &Bill{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BillNumber:          billNumber,
		FarmerName:          farmerName,
		FarmerMobile:        farmerMobile,
		VillageName:         villageName,
		MerchantID:          merchantID,
		TotalWeight:         decimal.Zero,
		Himmali:             decimal.Zero,
		Bharai:              decimal.Zero,
		MotorBhada:          decimal.Zero,
		OtherCharges:        decimal.Zero,
		Subtotal:            decimal.Zero,
		GrandTotal:          decimal.Zero,
	}, nil
}

// AddItem appends a validated line item to the bill. Totals are not touched;
// call Recalculate once all items and charges are in place.
func (b *Bill) AddItem(vegetable string, bags int64, weight, rate, amount decimal.Decimal, merchantID *uuid.UUID) (*BillItem, error) {
	if vegetable == "" {
		return nil, shared.NewValidationError("Vegetable name cannot be empty")
	}
	if bags < 0 {
		return nil, shared.NewValidationError("Bags cannot be negative")
	}
	if weight.IsNegative() {
		return nil, shared.NewValidationError("Weight cannot be negative")
	}
	if rate.IsNegative() {
		return nil, shared.NewValidationError("Rate cannot be negative")
	}
	if amount.IsNegative() {
		return nil, shared.NewValidationError("Amount cannot be negative")
	}

	item := BillItem{
		ID:         uuid.New(),
		BillID:     b.ID,
		TenantID:   b.TenantID,
		Vegetable:  vegetable,
		Bags:       bags,
		Weight:     weight,
		Rate:       rate,
		Amount:     amount,
		MerchantID: merchantID,
		CreatedAt:  time.Now(),
	}
	b.Items = append(b.Items, item)
	return &b.Items[len(b.Items)-1], nil
}

// ClearItems drops all line items, used by the full-replace update path.
func (b *Bill) ClearItems() {
	b.Items = nil
}

// SetCharges sets the fixed bill-level charges.
func (b *Bill) SetCharges(himmali, bharai, motorBhada, otherCharges decimal.Decimal) error {
	for _, c := range []decimal.Decimal{himmali, bharai, motorBhada, otherCharges} {
		if c.IsNegative() {
			return shared.NewValidationError("Charges cannot be negative")
		}
	}
	b.Himmali = himmali
	b.Bharai = bharai
	b.MotorBhada = motorBhada
	b.OtherCharges = otherCharges
	return nil
}

// UpdateFarmer applies new farmer identity fields; empty values keep the
// current ones.
func (b *Bill) UpdateFarmer(farmerName, farmerMobile, villageName string) {
	if farmerName != "" {
		b.FarmerName = farmerName
	}
	if farmerMobile != "" {
		b.FarmerMobile = farmerMobile
	}
	if villageName != "" {
		b.VillageName = villageName
	}
	b.Touch()
}

// Recalculate folds the current items and charges into the bill totals,
// maintaining grand_total = subtotal + himmali + bharai + motor_bhada +
// other_charges and subtotal = sum(item.amount).
func (b *Bill) Recalculate() error {
	totals, err := ComputeTotals(b.Items, Charges{
		Himmali:      b.Himmali,
		Bharai:       b.Bharai,
		MotorBhada:   b.MotorBhada,
		OtherCharges: b.OtherCharges,
	})
	if err != nil {
		return err
	}
	b.TotalBags = totals.TotalBags
	b.TotalWeight = totals.TotalWeight
	b.Subtotal = totals.Subtotal
	b.GrandTotal = totals.GrandTotal
	b.Touch()
	return nil
}
