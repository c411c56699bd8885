package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/billing"
	"github.com/mandi/backend/internal/domain/ledger"
	"github.com/mandi/backend/internal/domain/shared"
)

// MerchantService handles merchant lifecycle and statement queries.
type MerchantService struct {
	merchantRepo ledger.MerchantRepository
	txRepo       ledger.CreditTransactionRepository
	itemRepo     billing.BillItemRepository
	balances     *BalanceService
	txManager    shared.TxManager
}

// NewMerchantService creates a new MerchantService
func NewMerchantService(
	merchantRepo ledger.MerchantRepository,
	txRepo ledger.CreditTransactionRepository,
	itemRepo billing.BillItemRepository,
	balances *BalanceService,
	txManager shared.TxManager,
) *MerchantService {
	return &MerchantService{
		merchantRepo: merchantRepo,
		txRepo:       txRepo,
		itemRepo:     itemRepo,
		balances:     balances,
		txManager:    txManager,
	}
}

// Create creates a merchant together with its opening-balance entry.
func (s *MerchantService) Create(ctx context.Context, tenantID uuid.UUID, req CreateMerchantRequest) (*MerchantResponse, error) {
	opening := decimal.Zero
	if req.OpeningBalance != nil {
		opening = *req.OpeningBalance
	}
	if opening.IsNegative() {
		return nil, shared.NewValidationError("Opening balance cannot be negative")
	}

	merchant, err := ledger.NewMerchant(tenantID, req.Name, req.BusinessName, req.Mobile, opening)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.merchantRepo.Create(ctx, merchant); err != nil {
			return err
		}
		return s.ensureOpeningEntry(ctx, tenantID, merchant.ID, opening)
	})
	if err != nil {
		return nil, err
	}

	resp := toMerchantResponse(merchant)
	return &resp, nil
}

// Update applies partial changes to a merchant. When the opening balance is
// revised, the opening entry is rewritten and the balance rebuilt.
func (s *MerchantService) Update(ctx context.Context, tenantID, merchantID uuid.UUID, req UpdateMerchantRequest) (*MerchantResponse, error) {
	var merchant *ledger.Merchant
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		merchant, err = s.merchantRepo.FindByIDForTenant(ctx, tenantID, merchantID)
		if err != nil {
			return err
		}

		name, businessName, mobile := "", "", ""
		if req.Name != nil {
			name = *req.Name
		}
		if req.BusinessName != nil {
			businessName = *req.BusinessName
		}
		if req.Mobile != nil {
			mobile = *req.Mobile
		}
		if err := merchant.UpdateDetails(name, businessName, mobile); err != nil {
			return err
		}

		if req.OpeningBalance != nil {
			if req.OpeningBalance.IsNegative() {
				return shared.NewValidationError("Opening balance cannot be negative")
			}
			merchant.ReviseOpeningBalance(*req.OpeningBalance)
		}

		if err := s.merchantRepo.Save(ctx, merchant); err != nil {
			return err
		}

		if req.OpeningBalance != nil {
			if err := s.ensureOpeningEntry(ctx, tenantID, merchantID, *req.OpeningBalance); err != nil {
				return err
			}
			balance, err := s.balances.Recompute(ctx, tenantID, merchantID)
			if err != nil {
				return err
			}
			merchant.ApplyRecomputedBalance(balance)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toMerchantResponse(merchant)
	return &resp, nil
}

// Delete removes a merchant. Bills referencing the merchant keep their rows;
// only the merchant and its ledger entries go away.
func (s *MerchantService) Delete(ctx context.Context, tenantID, merchantID uuid.UUID) error {
	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.merchantRepo.FindByIDForTenant(ctx, tenantID, merchantID); err != nil {
			return err
		}
		return s.merchantRepo.Delete(ctx, tenantID, merchantID)
	})
}

// Get returns a single merchant.
func (s *MerchantService) Get(ctx context.Context, tenantID, merchantID uuid.UUID) (*MerchantResponse, error) {
	merchant, err := s.merchantRepo.FindByIDForTenant(ctx, tenantID, merchantID)
	if err != nil {
		return nil, err
	}
	resp := toMerchantResponse(merchant)
	return &resp, nil
}

// List returns all merchants for the tenant.
func (s *MerchantService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]MerchantResponse, error) {
	merchants, err := s.merchantRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]MerchantResponse, 0, len(merchants))
	for _, m := range merchants {
		responses = append(responses, toMerchantResponse(m))
	}
	return responses, nil
}

// Detail returns the merchant statement: profile, trades, payment entries and
// derived totals. The totals are computed from the listed rows so the
// statement is internally consistent even if the cached balance is stale.
func (s *MerchantService) Detail(ctx context.Context, tenantID, merchantID uuid.UUID) (*MerchantDetailResponse, error) {
	merchant, err := s.merchantRepo.FindByIDForTenant(ctx, tenantID, merchantID)
	if err != nil {
		return nil, err
	}

	trades, err := s.itemRepo.FindTradesByMerchant(ctx, tenantID, merchantID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.txRepo.FindByMerchant(ctx, tenantID, merchantID)
	if err != nil {
		return nil, err
	}

	detail := &MerchantDetailResponse{
		Merchant:     toMerchantResponse(merchant),
		Trades:       make([]TradeResponse, 0, len(trades)),
		Transactions: make([]TransactionResponse, 0, len(transactions)),
		TotalTrade:   decimal.Zero,
		TotalCredit:  decimal.Zero,
	}
	for _, tr := range trades {
		detail.Trades = append(detail.Trades, toTradeResponse(tr))
		detail.TotalTrade = detail.TotalTrade.Add(tr.Amount)
	}
	for _, tx := range transactions {
		detail.Transactions = append(detail.Transactions, toTransactionResponse(tx))
		if !tx.IsOpening() {
			detail.TotalCredit = detail.TotalCredit.Add(tx.Amount)
		}
	}
	detail.Balance = merchant.OpeningBalance.Add(detail.TotalTrade).Sub(detail.TotalCredit)
	return detail, nil
}

// DaySummary groups one day's trades by merchant and adds grand totals
// across every merchant that traded.
func (s *MerchantService) DaySummary(ctx context.Context, tenantID uuid.UUID, day time.Time) (*DaySummaryResponse, error) {
	// The report spans every merchant of the tenant; a paginated read
	// would drop rows from the grand totals.
	merchants, err := s.merchantRepo.FindAllForTenant(ctx, tenantID, shared.Filter{})
	if err != nil {
		return nil, err
	}

	report := &DaySummaryResponse{
		Date:            day.Format("2006-01-02"),
		Merchants:       make([]MerchantDaySummaryResponse, 0),
		TotalWeight:     decimal.Zero,
		TotalAmount:     decimal.Zero,
		TotalCommission: decimal.Zero,
	}
	for _, m := range merchants {
		trades, err := s.itemRepo.FindTradesByMerchantAndDate(ctx, tenantID, m.ID, day)
		if err != nil {
			return nil, err
		}
		if len(trades) == 0 {
			continue
		}
		summary := MerchantDaySummaryResponse{
			MerchantID:  m.ID,
			Name:        m.Name,
			TotalWeight: decimal.Zero,
			TotalAmount: decimal.Zero,
			Trades:      make([]TradeResponse, 0, len(trades)),
		}
		for _, tr := range trades {
			summary.Trades = append(summary.Trades, toTradeResponse(tr))
			summary.TotalBags += tr.Bags
			summary.TotalWeight = summary.TotalWeight.Add(tr.Weight)
			summary.TotalAmount = summary.TotalAmount.Add(tr.Amount)
		}
		summary.Commission = ledger.Commission(summary.TotalAmount, ledger.DefaultCommissionRate)

		report.Merchants = append(report.Merchants, summary)
		report.TotalBags += summary.TotalBags
		report.TotalWeight = report.TotalWeight.Add(summary.TotalWeight)
		report.TotalAmount = report.TotalAmount.Add(summary.TotalAmount)
		report.TotalCommission = report.TotalCommission.Add(summary.Commission)
	}
	return report, nil
}

// ensureOpeningEntry creates or rewrites the merchant's single opening-balance
// transaction. Repeated calls with the same amount are no-ops.
func (s *MerchantService) ensureOpeningEntry(ctx context.Context, tenantID, merchantID uuid.UUID, amount decimal.Decimal) error {
	existing, err := s.txRepo.FindOpening(ctx, tenantID, merchantID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		opening, err := ledger.NewOpeningTransaction(tenantID, merchantID, amount)
		if err != nil {
			return err
		}
		return s.txRepo.Create(ctx, opening)
	}

	if existing.Amount.Equal(amount) {
		return nil
	}
	if err := existing.UpdateAmount(amount); err != nil {
		return err
	}
	return s.txRepo.Save(ctx, existing)
}
