package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mandi/backend/internal/domain/billing"
	"github.com/mandi/backend/internal/domain/ledger"
	"github.com/mandi/backend/internal/domain/shared"
)

// billNumberAttempts bounds the retry loop when a generated bill number
// collides with an existing one.
const billNumberAttempts = 5

// BalanceRecalculator rebuilds cached merchant balances after bill rows
// change. Implemented by the ledger balance service.
type BalanceRecalculator interface {
	RecomputeAll(ctx context.Context, tenantID uuid.UUID, merchantIDs []uuid.UUID) error
}

// BillService is the billing workflow: it creates, replaces and deletes
// bills, keeps commission income rows in step with merchant-linked items,
// and triggers balance recomputation for every merchant a change touches.
type BillService struct {
	billRepo     billing.BillRepository
	merchantRepo ledger.MerchantRepository
	incomeRepo   ledger.IncomeRepository
	balances     BalanceRecalculator
	txManager    shared.TxManager
	now          func() time.Time
}

// NewBillService creates a new BillService
func NewBillService(
	billRepo billing.BillRepository,
	merchantRepo ledger.MerchantRepository,
	incomeRepo ledger.IncomeRepository,
	balances BalanceRecalculator,
	txManager shared.TxManager,
) *BillService {
	return &BillService{
		billRepo:     billRepo,
		merchantRepo: merchantRepo,
		incomeRepo:   incomeRepo,
		balances:     balances,
		txManager:    txManager,
		now:          time.Now,
	}
}

// Create creates a bill with its items, generates commission income for
// merchant-linked items and recomputes the touched merchants' balances, all
// in one transaction. The unique index on the bill number is the backstop
// for concurrent creates: when the insert loses that race the transaction
// is rolled back and retried with a fresh number.
func (s *BillService) Create(ctx context.Context, tenantID uuid.UUID, req CreateBillRequest) (*BillResponse, error) {
	for i := 0; i < billNumberAttempts; i++ {
		bill, err := s.createOnce(ctx, tenantID, req)
		if errors.Is(err, shared.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		resp := toBillResponse(bill)
		return &resp, nil
	}
	return nil, shared.NewDomainError("CONFLICT", "Could not allocate a unique bill number")
}

func (s *BillService) createOnce(ctx context.Context, tenantID uuid.UUID, req CreateBillRequest) (*billing.Bill, error) {
	var bill *billing.Bill
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.verifyMerchants(ctx, tenantID, req.MerchantID, req.Items); err != nil {
			return err
		}

		number, err := s.uniqueBillNumber(ctx, tenantID)
		if err != nil {
			return err
		}

		bill, err = billing.NewBill(tenantID, number, req.FarmerName, req.FarmerMobile, req.VillageName, req.MerchantID)
		if err != nil {
			return err
		}
		if err := bill.SetCharges(req.Himmali, req.Bharai, req.MotorBhada, req.OtherCharges); err != nil {
			return err
		}
		for _, item := range req.Items {
			if _, err := bill.AddItem(item.Vegetable, item.Bags, item.Weight, item.Rate, item.Amount, item.MerchantID); err != nil {
				return err
			}
		}
		if err := bill.Recalculate(); err != nil {
			return err
		}

		if err := s.billRepo.Create(ctx, bill); err != nil {
			return err
		}
		if err := s.generateIncome(ctx, bill); err != nil {
			return err
		}
		return s.balances.RecomputeAll(ctx, tenantID, itemMerchants(bill.Items))
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// Update replaces a bill's contents wholesale: farmer fields, charges and the
// entire item list. Income rows for the bill are regenerated, and balances
// are recomputed for every merchant the old or new items reference.
func (s *BillService) Update(ctx context.Context, tenantID, billID uuid.UUID, req UpdateBillRequest) (*BillResponse, error) {
	var bill *billing.Bill
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		bill, err = s.billRepo.FindByIDForTenant(ctx, tenantID, billID)
		if err != nil {
			return err
		}
		touched := itemMerchants(bill.Items)

		if err := s.verifyMerchants(ctx, tenantID, req.MerchantID, req.Items); err != nil {
			return err
		}

		bill.UpdateFarmer(req.FarmerName, req.FarmerMobile, req.VillageName)
		bill.MerchantID = req.MerchantID
		if err := bill.SetCharges(req.Himmali, req.Bharai, req.MotorBhada, req.OtherCharges); err != nil {
			return err
		}
		bill.ClearItems()
		for _, item := range req.Items {
			if _, err := bill.AddItem(item.Vegetable, item.Bags, item.Weight, item.Rate, item.Amount, item.MerchantID); err != nil {
				return err
			}
		}
		if err := bill.Recalculate(); err != nil {
			return err
		}

		if err := s.billRepo.Save(ctx, bill); err != nil {
			return err
		}
		if err := s.incomeRepo.DeleteByBill(ctx, tenantID, billID); err != nil {
			return err
		}
		if err := s.generateIncome(ctx, bill); err != nil {
			return err
		}

		touched = append(touched, itemMerchants(bill.Items)...)
		return s.balances.RecomputeAll(ctx, tenantID, touched)
	})
	if err != nil {
		return nil, err
	}

	resp := toBillResponse(bill)
	return &resp, nil
}

// Delete removes a bill, its items and its income rows, then restores the
// balances of the merchants the bill touched.
func (s *BillService) Delete(ctx context.Context, tenantID, billID uuid.UUID) error {
	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, billID)
		if err != nil {
			return err
		}
		touched := itemMerchants(bill.Items)

		if err := s.incomeRepo.DeleteByBill(ctx, tenantID, billID); err != nil {
			return err
		}
		if err := s.billRepo.Delete(ctx, tenantID, billID); err != nil {
			return err
		}
		return s.balances.RecomputeAll(ctx, tenantID, touched)
	})
}

// Get returns a single bill with its items.
func (s *BillService) Get(ctx context.Context, tenantID, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}
	resp := toBillResponse(bill)
	return &resp, nil
}

// List returns bills matching the query, newest first, without items.
func (s *BillService) List(ctx context.Context, tenantID uuid.UUID, query ListBillsQuery) ([]BillResponse, error) {
	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}

	bills, err := s.billRepo.List(ctx, tenantID, billing.BillFilter{
		Filter:      filter,
		DateFrom:    query.DateFrom,
		DateTo:      query.DateTo,
		FarmerName:  query.FarmerName,
		VillageName: query.VillageName,
		MerchantID:  query.MerchantID,
	})
	if err != nil {
		return nil, err
	}
	responses := make([]BillResponse, 0, len(bills))
	for _, b := range bills {
		responses = append(responses, toBillResponse(b))
	}
	return responses, nil
}

// FarmersForDate groups one day's bills by farmer.
func (s *BillService) FarmersForDate(ctx context.Context, tenantID uuid.UUID, day time.Time) ([]FarmerDaySummaryResponse, error) {
	bills, err := s.billRepo.FindByDate(ctx, tenantID, day)
	if err != nil {
		return nil, err
	}

	type farmerKey struct {
		name    string
		village string
	}
	order := make([]farmerKey, 0)
	grouped := make(map[farmerKey]*FarmerDaySummaryResponse)
	for _, b := range bills {
		key := farmerKey{name: b.FarmerName, village: b.VillageName}
		summary, ok := grouped[key]
		if !ok {
			summary = &FarmerDaySummaryResponse{FarmerName: b.FarmerName, VillageName: b.VillageName}
			grouped[key] = summary
			order = append(order, key)
		}
		summary.BillCount++
		summary.TotalBags += b.TotalBags
		summary.TotalWeight = summary.TotalWeight.Add(b.TotalWeight)
		summary.TotalAmount = summary.TotalAmount.Add(b.GrandTotal)
	}

	summaries := make([]FarmerDaySummaryResponse, 0, len(order))
	for _, key := range order {
		summaries = append(summaries, *grouped[key])
	}
	return summaries, nil
}

// uniqueBillNumber generates a bill number, retrying on collision with an
// existing bill of the same tenant.
func (s *BillService) uniqueBillNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	for i := 0; i < billNumberAttempts; i++ {
		number := billing.GenerateBillNumber(s.now())
		exists, err := s.billRepo.ExistsByNumber(ctx, tenantID, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", shared.NewDomainError("CONFLICT", "Could not allocate a unique bill number")
}

// verifyMerchants checks that every merchant referenced by the bill or its
// items belongs to the tenant. A merchant owned by another tenant is
// indistinguishable from a missing one.
func (s *BillService) verifyMerchants(ctx context.Context, tenantID uuid.UUID, billMerchant *uuid.UUID, items []BillItemRequest) error {
	ids := make([]uuid.UUID, 0, len(items)+1)
	seen := make(map[uuid.UUID]bool)
	add := func(id *uuid.UUID) {
		if id == nil || *id == uuid.Nil || seen[*id] {
			return
		}
		seen[*id] = true
		ids = append(ids, *id)
	}
	add(billMerchant)
	for i := range items {
		add(items[i].MerchantID)
	}
	if len(ids) == 0 {
		return nil
	}

	merchants, err := s.merchantRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return err
	}
	if len(merchants) != len(ids) {
		return shared.ErrNotFound
	}
	return nil
}

// generateIncome creates one commission income row per merchant-linked item.
func (s *BillService) generateIncome(ctx context.Context, bill *billing.Bill) error {
	incomes := make([]*ledger.AdhatiyaIncome, 0, len(bill.Items))
	for i := range bill.Items {
		item := &bill.Items[i]
		if item.MerchantID == nil || *item.MerchantID == uuid.Nil {
			continue
		}
		income, err := ledger.NewAdhatiyaIncome(bill.TenantID, bill.ID, *item.MerchantID, item.Amount, ledger.DefaultCommissionRate, bill.CreatedAt)
		if err != nil {
			return err
		}
		incomes = append(incomes, income)
	}
	if len(incomes) == 0 {
		return nil
	}
	return s.incomeRepo.CreateBatch(ctx, incomes)
}

func itemMerchants(items []billing.BillItem) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for i := range items {
		if items[i].MerchantID != nil {
			ids = append(ids, *items[i].MerchantID)
		}
	}
	return ids
}
