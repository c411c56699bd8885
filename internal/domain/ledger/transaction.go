package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/shared"
)

// TransactionType represents the type of a ledger transaction.
// Only credit entries (payments received from a merchant) are meaningful;
// the type is stored to keep the row format open for future debit support.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
)

// IsValid returns true if the transaction type is known
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeCredit
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// PaymentModeOpening marks the synthetic transaction that carries a
// merchant's opening balance. There is at most one such entry per merchant
// and it is excluded from the credit sum during balance recomputation.
const PaymentModeOpening = "Opening Balance"

// CreditTransaction is a payment entry against a merchant's balance,
// independent of bills. Amounts are always positive; a credit reduces the
// merchant's balance except for the opening entry, which seeds it.
type CreditTransaction struct {
	shared.BaseEntity
	TenantID        uuid.UUID
	MerchantID      uuid.UUID
	Amount          decimal.Decimal
	PaymentMode     string
	TransactionType TransactionType
	Description     string
}

// NewCreditTransaction creates a credit entry for a merchant.
func NewCreditTransaction(tenantID, merchantID uuid.UUID, amount decimal.Decimal, paymentMode, description string) (*CreditTransaction, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if merchantID == uuid.Nil {
		return nil, shared.NewValidationError("Merchant ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Credit amount must be positive")
	}
	if paymentMode == "" {
		return nil, shared.NewValidationError("Payment mode cannot be empty")
	}
	if paymentMode == PaymentModeOpening {
		return nil, shared.NewValidationError("Payment mode is reserved for the opening balance entry")
	}

	return &CreditTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		TenantID:        tenantID,
		MerchantID:      merchantID,
		Amount:          amount,
		PaymentMode:     paymentMode,
		TransactionType: TransactionTypeCredit,
		Description:     description,
	}, nil
}

// NewOpeningTransaction creates the synthetic opening-balance entry for a
// merchant. Unlike regular credits a zero amount is allowed, so a revised
// opening balance of zero still keeps the single opening row.
func NewOpeningTransaction(tenantID, merchantID uuid.UUID, amount decimal.Decimal) (*CreditTransaction, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if merchantID == uuid.Nil {
		return nil, shared.NewValidationError("Merchant ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewValidationError("Opening balance cannot be negative")
	}

	return &CreditTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		TenantID:        tenantID,
		MerchantID:      merchantID,
		Amount:          amount,
		PaymentMode:     PaymentModeOpening,
		TransactionType: TransactionTypeCredit,
		Description:     "Opening balance",
	}, nil
}

// IsOpening returns true for the synthetic opening-balance entry
func (t *CreditTransaction) IsOpening() bool {
	return t.PaymentMode == PaymentModeOpening
}

// UpdateAmount changes the entry amount. The opening entry may be set to
// zero; regular credits must stay positive.
func (t *CreditTransaction) UpdateAmount(amount decimal.Decimal) error {
	if t.IsOpening() {
		if amount.IsNegative() {
			return shared.NewValidationError("Opening balance cannot be negative")
		}
	} else if !amount.IsPositive() {
		return shared.NewValidationError("Credit amount must be positive")
	}
	t.Amount = amount
	t.Touch()
	return nil
}

// UpdateDetails changes payment mode and description of a regular credit.
func (t *CreditTransaction) UpdateDetails(paymentMode, description string) error {
	if t.IsOpening() {
		return shared.NewValidationError("Opening balance entry cannot be repurposed")
	}
	if paymentMode != "" {
		if paymentMode == PaymentModeOpening {
			return shared.NewValidationError("Payment mode is reserved for the opening balance entry")
		}
		t.PaymentMode = paymentMode
	}
	t.Description = description
	t.Touch()
	return nil
}
