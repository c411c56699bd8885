package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/billing"
	"github.com/mandi/backend/internal/domain/ledger"
)

// BalanceService recomputes merchant balances from source rows. The cached
// current_balance column is never adjusted incrementally; it is always
// rebuilt as
//
//	opening balance + sum(bill item amounts) - sum(credit payments)
//
// where the credit sum excludes the synthetic opening entry.
type BalanceService struct {
	merchantRepo ledger.MerchantRepository
	itemRepo     billing.BillItemRepository
	txRepo       ledger.CreditTransactionRepository
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(
	merchantRepo ledger.MerchantRepository,
	itemRepo billing.BillItemRepository,
	txRepo ledger.CreditTransactionRepository,
) *BalanceService {
	return &BalanceService{
		merchantRepo: merchantRepo,
		itemRepo:     itemRepo,
		txRepo:       txRepo,
	}
}

// Recompute locks the merchant row, rebuilds the balance from bill items and
// credit entries, and writes it back. Callers run it inside the transaction
// that changed the underlying rows.
func (s *BalanceService) Recompute(ctx context.Context, tenantID, merchantID uuid.UUID) (decimal.Decimal, error) {
	merchant, err := s.merchantRepo.FindByIDForTenantLocked(ctx, tenantID, merchantID)
	if err != nil {
		return decimal.Zero, err
	}

	trade, err := s.itemRepo.SumAmountByMerchant(ctx, tenantID, merchantID)
	if err != nil {
		return decimal.Zero, err
	}
	credits, err := s.txRepo.SumCreditByMerchant(ctx, tenantID, merchantID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := merchant.OpeningBalance.Add(trade).Sub(credits)
	if err := s.merchantRepo.UpdateBalance(ctx, tenantID, merchantID, balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// RecomputeAll recomputes balances for several merchants, deduplicating IDs.
func (s *BalanceService) RecomputeAll(ctx context.Context, tenantID uuid.UUID, merchantIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(merchantIDs))
	for _, id := range merchantIDs {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		if _, err := s.Recompute(ctx, tenantID, id); err != nil {
			return err
		}
	}
	return nil
}
