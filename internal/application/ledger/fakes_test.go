package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/billing"
	"github.com/mandi/backend/internal/domain/ledger"
	"github.com/mandi/backend/internal/domain/shared"
)

// fakeTxManager runs the unit of work directly; the in-memory fakes have no
// real transactions to join.
type fakeTxManager struct{}

func (fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type tenantKey struct {
	tenant uuid.UUID
	id     uuid.UUID
}

type fakeMerchantRepo struct {
	merchants map[tenantKey]*ledger.Merchant
}

func newFakeMerchantRepo() *fakeMerchantRepo {
	return &fakeMerchantRepo{merchants: make(map[tenantKey]*ledger.Merchant)}
}

func (r *fakeMerchantRepo) Create(_ context.Context, m *ledger.Merchant) error {
	r.merchants[tenantKey{m.TenantID, m.ID}] = m
	return nil
}

func (r *fakeMerchantRepo) Save(_ context.Context, m *ledger.Merchant) error {
	key := tenantKey{m.TenantID, m.ID}
	if _, ok := r.merchants[key]; !ok {
		return shared.ErrNotFound
	}
	r.merchants[key] = m
	return nil
}

func (r *fakeMerchantRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	key := tenantKey{tenantID, id}
	if _, ok := r.merchants[key]; !ok {
		return shared.ErrNotFound
	}
	delete(r.merchants, key)
	return nil
}

func (r *fakeMerchantRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*ledger.Merchant, error) {
	if m, ok := r.merchants[tenantKey{tenantID, id}]; ok {
		return m, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeMerchantRepo) FindByIDForTenantLocked(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Merchant, error) {
	return r.FindByIDForTenant(ctx, tenantID, id)
}

func (r *fakeMerchantRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*ledger.Merchant, error) {
	var out []*ledger.Merchant
	for key, m := range r.merchants {
		if key.tenant == tenantID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	// Paginate exactly like the gorm repository: a zero page size reads
	// everything.
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
		if len(out) > filter.PageSize {
			out = out[:filter.PageSize]
		}
	}
	return out, nil
}

func (r *fakeMerchantRepo) FindByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.Merchant, error) {
	var out []*ledger.Merchant
	for _, id := range ids {
		if m, ok := r.merchants[tenantKey{tenantID, id}]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMerchantRepo) UpdateBalance(_ context.Context, tenantID, id uuid.UUID, balance decimal.Decimal) error {
	m, ok := r.merchants[tenantKey{tenantID, id}]
	if !ok {
		return shared.ErrNotFound
	}
	m.CurrentBalance = balance
	return nil
}

type fakeTransactionRepo struct {
	entries map[tenantKey]*ledger.CreditTransaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{entries: make(map[tenantKey]*ledger.CreditTransaction)}
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *ledger.CreditTransaction) error {
	r.entries[tenantKey{tx.TenantID, tx.ID}] = tx
	return nil
}

func (r *fakeTransactionRepo) Save(_ context.Context, tx *ledger.CreditTransaction) error {
	key := tenantKey{tx.TenantID, tx.ID}
	if _, ok := r.entries[key]; !ok {
		return shared.ErrNotFound
	}
	r.entries[key] = tx
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	key := tenantKey{tenantID, id}
	if _, ok := r.entries[key]; !ok {
		return shared.ErrNotFound
	}
	delete(r.entries, key)
	return nil
}

func (r *fakeTransactionRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*ledger.CreditTransaction, error) {
	if tx, ok := r.entries[tenantKey{tenantID, id}]; ok {
		return tx, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTransactionRepo) FindByMerchant(_ context.Context, tenantID, merchantID uuid.UUID) ([]*ledger.CreditTransaction, error) {
	var out []*ledger.CreditTransaction
	for key, tx := range r.entries {
		if key.tenant == tenantID && tx.MerchantID == merchantID {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTransactionRepo) FindOpening(_ context.Context, tenantID, merchantID uuid.UUID) (*ledger.CreditTransaction, error) {
	for key, tx := range r.entries {
		if key.tenant == tenantID && tx.MerchantID == merchantID && tx.IsOpening() {
			return tx, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTransactionRepo) SumCreditByMerchant(_ context.Context, tenantID, merchantID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for key, tx := range r.entries {
		if key.tenant == tenantID && tx.MerchantID == merchantID && !tx.IsOpening() {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum, nil
}

type fakeTrade struct {
	tenantID   uuid.UUID
	merchantID uuid.UUID
	trade      *billing.MerchantTrade
}

type fakeItemRepo struct {
	trades []fakeTrade
}

func (r *fakeItemRepo) add(tenantID, merchantID uuid.UUID, trade *billing.MerchantTrade) {
	r.trades = append(r.trades, fakeTrade{tenantID: tenantID, merchantID: merchantID, trade: trade})
}

// removeBill mimics a bill deletion cascading to its items.
func (r *fakeItemRepo) removeBill(billID uuid.UUID) {
	kept := r.trades[:0]
	for _, t := range r.trades {
		if t.trade.BillID != billID {
			kept = append(kept, t)
		}
	}
	r.trades = kept
}

func (r *fakeItemRepo) SumAmountByMerchant(_ context.Context, tenantID, merchantID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range r.trades {
		if t.tenantID == tenantID && t.merchantID == merchantID {
			sum = sum.Add(t.trade.Amount)
		}
	}
	return sum, nil
}

func (r *fakeItemRepo) FindTradesByMerchant(_ context.Context, tenantID, merchantID uuid.UUID) ([]*billing.MerchantTrade, error) {
	var out []*billing.MerchantTrade
	for _, t := range r.trades {
		if t.tenantID == tenantID && t.merchantID == merchantID {
			out = append(out, t.trade)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) FindTradesByMerchantAndDate(_ context.Context, tenantID, merchantID uuid.UUID, day time.Time) ([]*billing.MerchantTrade, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var out []*billing.MerchantTrade
	for _, t := range r.trades {
		if t.tenantID == tenantID && t.merchantID == merchantID &&
			!t.trade.Date.Before(start) && t.trade.Date.Before(end) {
			out = append(out, t.trade)
		}
	}
	return out, nil
}

var (
	_ ledger.MerchantRepository          = (*fakeMerchantRepo)(nil)
	_ ledger.CreditTransactionRepository = (*fakeTransactionRepo)(nil)
	_ billing.BillItemRepository         = (*fakeItemRepo)(nil)
	_ shared.TxManager                   = fakeTxManager{}
)
