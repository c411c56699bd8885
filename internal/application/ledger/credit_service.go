package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/mandi/backend/internal/domain/ledger"
	"github.com/mandi/backend/internal/domain/shared"
)

// CreditService records payments received from merchants. Every mutation
// ends with a balance recomputation for the touched merchant, inside the
// same transaction.
type CreditService struct {
	merchantRepo ledger.MerchantRepository
	txRepo       ledger.CreditTransactionRepository
	balances     *BalanceService
	txManager    shared.TxManager
}

// NewCreditService creates a new CreditService
func NewCreditService(
	merchantRepo ledger.MerchantRepository,
	txRepo ledger.CreditTransactionRepository,
	balances *BalanceService,
	txManager shared.TxManager,
) *CreditService {
	return &CreditService{
		merchantRepo: merchantRepo,
		txRepo:       txRepo,
		balances:     balances,
		txManager:    txManager,
	}
}

// Create records a payment against a merchant's balance.
func (s *CreditService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCreditRequest) (*TransactionResponse, error) {
	var entry *ledger.CreditTransaction
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.merchantRepo.FindByIDForTenant(ctx, tenantID, req.MerchantID); err != nil {
			return err
		}

		var err error
		entry, err = ledger.NewCreditTransaction(tenantID, req.MerchantID, req.Amount, req.PaymentMode, req.Description)
		if err != nil {
			return err
		}
		if err := s.txRepo.Create(ctx, entry); err != nil {
			return err
		}
		_, err = s.balances.Recompute(ctx, tenantID, req.MerchantID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := toTransactionResponse(entry)
	return &resp, nil
}

// Update changes a payment entry. The opening-balance entry cannot be edited
// here; it is managed through the merchant's opening balance.
func (s *CreditService) Update(ctx context.Context, tenantID, entryID uuid.UUID, req UpdateCreditRequest) (*TransactionResponse, error) {
	var entry *ledger.CreditTransaction
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.txRepo.FindByIDForTenant(ctx, tenantID, entryID)
		if err != nil {
			return err
		}
		if entry.IsOpening() {
			return shared.NewValidationError("Opening balance entry cannot be edited directly")
		}

		if req.Amount != nil {
			if err := entry.UpdateAmount(*req.Amount); err != nil {
				return err
			}
		}
		if req.PaymentMode != nil || req.Description != nil {
			mode := entry.PaymentMode
			if req.PaymentMode != nil {
				mode = *req.PaymentMode
			}
			description := entry.Description
			if req.Description != nil {
				description = *req.Description
			}
			if err := entry.UpdateDetails(mode, description); err != nil {
				return err
			}
		}

		if err := s.txRepo.Save(ctx, entry); err != nil {
			return err
		}
		_, err = s.balances.Recompute(ctx, tenantID, entry.MerchantID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := toTransactionResponse(entry)
	return &resp, nil
}

// Delete removes a payment entry and restores the merchant's balance.
func (s *CreditService) Delete(ctx context.Context, tenantID, entryID uuid.UUID) error {
	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.txRepo.FindByIDForTenant(ctx, tenantID, entryID)
		if err != nil {
			return err
		}
		if entry.IsOpening() {
			return shared.NewValidationError("Opening balance entry cannot be deleted directly")
		}

		if err := s.txRepo.Delete(ctx, tenantID, entryID); err != nil {
			return err
		}
		_, err = s.balances.Recompute(ctx, tenantID, entry.MerchantID)
		return err
	})
}

// ListByMerchant returns all ledger entries for a merchant, newest first.
func (s *CreditService) ListByMerchant(ctx context.Context, tenantID, merchantID uuid.UUID) ([]TransactionResponse, error) {
	if _, err := s.merchantRepo.FindByIDForTenant(ctx, tenantID, merchantID); err != nil {
		return nil, err
	}
	entries, err := s.txRepo.FindByMerchant(ctx, tenantID, merchantID)
	if err != nil {
		return nil, err
	}
	responses := make([]TransactionResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, toTransactionResponse(e))
	}
	return responses, nil
}
