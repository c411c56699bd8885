package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/shared"
)

// BillFilter narrows bill listings. Text fields match as case-insensitive
// substrings; dates are inclusive.
type BillFilter struct {
	shared.Filter
	DateFrom    *time.Time
	DateTo      *time.Time
	FarmerName  string
	VillageName string
	MerchantID  *uuid.UUID
}

// MerchantTrade is a bill item joined with its parent bill's identity,
// used for merchant statements.
type MerchantTrade struct {
	ItemID     uuid.UUID
	BillID     uuid.UUID
	BillNumber string
	FarmerName string
	Vegetable  string
	Bags       int64
	Weight     decimal.Decimal
	Rate       decimal.Decimal
	Amount     decimal.Decimal
	Date       time.Time
}

// BillRepository defines persistence for bills and their items as one
// aggregate. All lookups are tenant-scoped.
type BillRepository interface {
	// Create persists the bill together with its items.
	Create(ctx context.Context, bill *Bill) error

	// Save persists the bill header and replaces its items wholesale.
	Save(ctx context.Context, bill *Bill) error

	// Delete removes the bill and cascades to its items.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// FindByIDForTenant loads the bill with its items.
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Bill, error)

	// ExistsByNumber reports whether the tenant already has a bill with the
	// given number.
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (bool, error)

	// List returns bills matching the filter, newest first, without items.
	List(ctx context.Context, tenantID uuid.UUID, filter BillFilter) ([]*Bill, error)

	// FindByDate returns bills created on the given calendar day, with items.
	FindByDate(ctx context.Context, tenantID uuid.UUID, day time.Time) ([]*Bill, error)
}

// BillItemRepository exposes item-level reads that cut across bills.
type BillItemRepository interface {
	// SumAmountByMerchant sums item amounts attributed to a merchant across
	// all of the tenant's bills.
	SumAmountByMerchant(ctx context.Context, tenantID, merchantID uuid.UUID) (decimal.Decimal, error)

	// FindTradesByMerchant returns the merchant's trades joined with bill
	// identity, newest first.
	FindTradesByMerchant(ctx context.Context, tenantID, merchantID uuid.UUID) ([]*MerchantTrade, error)

	// FindTradesByMerchantAndDate restricts trades to one calendar day.
	FindTradesByMerchantAndDate(ctx context.Context, tenantID, merchantID uuid.UUID, day time.Time) ([]*MerchantTrade, error)
}
