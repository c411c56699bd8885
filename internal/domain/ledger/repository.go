package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/shared"
)

// MerchantRepository defines persistence for merchants.
// All lookups are tenant-scoped; a row owned by another tenant behaves
// exactly like an absent row (shared.ErrNotFound).
type MerchantRepository interface {
	Create(ctx context.Context, merchant *Merchant) error

	Save(ctx context.Context, merchant *Merchant) error

	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Merchant, error)

	// FindByIDForTenantLocked loads the merchant with a row-level exclusive
	// lock (SELECT ... FOR UPDATE) so concurrent balance recomputations
	// against the same merchant serialize.
	FindByIDForTenantLocked(ctx context.Context, tenantID, id uuid.UUID) (*Merchant, error)

	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Merchant, error)

	// FindByIDs loads the given merchants in one query; missing IDs are
	// silently skipped.
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*Merchant, error)

	// UpdateBalance refreshes the cached current_balance column. Only the
	// balance recomputation service may call it.
	UpdateBalance(ctx context.Context, tenantID, id uuid.UUID, balance decimal.Decimal) error
}

// CreditTransactionRepository defines persistence for credit entries.
type CreditTransactionRepository interface {
	Create(ctx context.Context, tx *CreditTransaction) error

	Save(ctx context.Context, tx *CreditTransaction) error

	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CreditTransaction, error)

	// FindByMerchant returns all entries for a merchant, newest first.
	FindByMerchant(ctx context.Context, tenantID, merchantID uuid.UUID) ([]*CreditTransaction, error)

	// FindOpening returns the merchant's synthetic opening-balance entry,
	// or shared.ErrNotFound when none has been recorded.
	FindOpening(ctx context.Context, tenantID, merchantID uuid.UUID) (*CreditTransaction, error)

	// SumCreditByMerchant sums credit amounts for a merchant, excluding the
	// opening-balance entry.
	SumCreditByMerchant(ctx context.Context, tenantID, merchantID uuid.UUID) (decimal.Decimal, error)
}

// IncomeFilter narrows income queries to a date range (inclusive).
type IncomeFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
}

// IncomeRepository defines persistence for commission income records.
type IncomeRepository interface {
	CreateBatch(ctx context.Context, incomes []*AdhatiyaIncome) error

	DeleteByBill(ctx context.Context, tenantID, billID uuid.UUID) error

	// FindByDateRange returns income rows for the tenant, newest first.
	FindByDateRange(ctx context.Context, tenantID uuid.UUID, filter IncomeFilter) ([]*AdhatiyaIncome, error)
}
