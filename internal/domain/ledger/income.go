package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/shared"
)

// AdhatiyaIncome is one commission-income record derived from a
// merchant-linked bill item. Rows are deleted and regenerated whenever the
// parent bill's items are replaced, so they are never updated in place.
type AdhatiyaIncome struct {
	shared.BaseEntity
	TenantID         uuid.UUID
	BillID           uuid.UUID
	MerchantID       uuid.UUID
	TradeAmount      decimal.Decimal
	CommissionRate   decimal.Decimal
	CommissionAmount decimal.Decimal
	Date             time.Time
}

// NewAdhatiyaIncome creates an income record for a trade. The commission
// amount is always derived from the trade amount and rate, never supplied.
func NewAdhatiyaIncome(tenantID, billID, merchantID uuid.UUID, tradeAmount, rate decimal.Decimal, date time.Time) (*AdhatiyaIncome, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if billID == uuid.Nil {
		return nil, shared.NewValidationError("Bill ID cannot be empty")
	}
	if merchantID == uuid.Nil {
		return nil, shared.NewValidationError("Merchant ID cannot be empty")
	}
	if rate.IsNegative() {
		return nil, shared.NewValidationError("Commission rate cannot be negative")
	}

	return &AdhatiyaIncome{
		BaseEntity:       shared.NewBaseEntity(),
		TenantID:         tenantID,
		BillID:           billID,
		MerchantID:       merchantID,
		TradeAmount:      tradeAmount,
		CommissionRate:   rate,
		CommissionAmount: Commission(tradeAmount, rate),
		Date:             date,
	}, nil
}
