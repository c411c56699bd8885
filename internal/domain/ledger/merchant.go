package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/shared"
)

// Merchant represents a trading counterparty (vyapari) whose running balance
// the ledger tracks. CurrentBalance is derived: it always equals
//
//	opening balance + sum(trade amounts) - sum(credit payments)
//
// and must never be assigned outside ApplyRecomputedBalance.
type Merchant struct {
	shared.TenantAggregateRoot
	Name           string
	BusinessName   string
	Mobile         string
	OpeningBalance decimal.Decimal
	CurrentBalance decimal.Decimal
}

// NewMerchant creates a new merchant for the given tenant.
// The opening balance seeds the derived current balance; the caller is
// responsible for recording the matching opening-balance transaction.
func NewMerchant(tenantID uuid.UUID, name, businessName, mobile string, openingBalance decimal.Decimal) (*Merchant, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("Merchant name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("Merchant name cannot exceed 200 characters")
	}
	if mobile == "" {
		return nil, shared.NewValidationError("Merchant mobile cannot be empty")
	}

	return &Merchant{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		BusinessName:        businessName,
		Mobile:              mobile,
		OpeningBalance:      openingBalance,
		CurrentBalance:      openingBalance,
	}, nil
}

// UpdateDetails updates the merchant's contact fields. Empty name or mobile
// leaves the current value untouched, matching partial-update semantics.
func (m *Merchant) UpdateDetails(name, businessName, mobile string) error {
	if name != "" {
		if len(name) > 200 {
			return shared.NewValidationError("Merchant name cannot exceed 200 characters")
		}
		m.Name = name
	}
	if businessName != "" {
		m.BusinessName = businessName
	}
	if mobile != "" {
		m.Mobile = mobile
	}
	m.Touch()
	return nil
}

// ReviseOpeningBalance sets a new opening balance. The caller must update the
// opening-balance transaction and recompute the current balance afterwards.
func (m *Merchant) ReviseOpeningBalance(amount decimal.Decimal) {
	m.OpeningBalance = amount
	m.Touch()
}

// ApplyRecomputedBalance refreshes the cached current balance from a derived
// recomputation. This is the only sanctioned way to change CurrentBalance.
func (m *Merchant) ApplyRecomputedBalance(balance decimal.Decimal) {
	m.CurrentBalance = balance
	m.Touch()
}
