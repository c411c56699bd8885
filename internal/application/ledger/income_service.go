package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/ledger"
)

// IncomeService exposes commission income reports. Income rows are produced
// and deleted by the bill workflow; this service only reads them.
type IncomeService struct {
	incomeRepo ledger.IncomeRepository
}

// NewIncomeService creates a new IncomeService
func NewIncomeService(incomeRepo ledger.IncomeRepository) *IncomeService {
	return &IncomeService{incomeRepo: incomeRepo}
}

// List returns income rows in the date range, newest first.
func (s *IncomeService) List(ctx context.Context, tenantID uuid.UUID, dateFrom, dateTo *time.Time) ([]IncomeResponse, error) {
	incomes, err := s.incomeRepo.FindByDateRange(ctx, tenantID, ledger.IncomeFilter{DateFrom: dateFrom, DateTo: dateTo})
	if err != nil {
		return nil, err
	}
	responses := make([]IncomeResponse, 0, len(incomes))
	for _, i := range incomes {
		responses = append(responses, toIncomeResponse(i))
	}
	return responses, nil
}

// Summary aggregates trade and commission totals over the date range,
// bucketed by calendar day and merchant.
func (s *IncomeService) Summary(ctx context.Context, tenantID uuid.UUID, dateFrom, dateTo *time.Time) (*IncomeSummaryResponse, error) {
	incomes, err := s.incomeRepo.FindByDateRange(ctx, tenantID, ledger.IncomeFilter{DateFrom: dateFrom, DateTo: dateTo})
	if err != nil {
		return nil, err
	}

	summary := &IncomeSummaryResponse{
		TotalTrade:      decimal.Zero,
		TotalCommission: decimal.Zero,
		Count:           len(incomes),
		Groups:          make([]IncomeGroupResponse, 0),
		Incomes:         make([]IncomeResponse, 0, len(incomes)),
	}

	type groupKey struct {
		date     string
		merchant uuid.UUID
	}
	groupIndex := make(map[groupKey]int)

	for _, i := range incomes {
		summary.TotalTrade = summary.TotalTrade.Add(i.TradeAmount)
		summary.TotalCommission = summary.TotalCommission.Add(i.CommissionAmount)
		summary.Incomes = append(summary.Incomes, toIncomeResponse(i))

		key := groupKey{date: i.Date.Format("2006-01-02"), merchant: i.MerchantID}
		idx, ok := groupIndex[key]
		if !ok {
			idx = len(summary.Groups)
			groupIndex[key] = idx
			summary.Groups = append(summary.Groups, IncomeGroupResponse{
				Date:             i.Date,
				MerchantID:       i.MerchantID,
				TradeAmount:      decimal.Zero,
				CommissionAmount: decimal.Zero,
			})
		}
		group := &summary.Groups[idx]
		group.TradeAmount = group.TradeAmount.Add(i.TradeAmount)
		group.CommissionAmount = group.CommissionAmount.Add(i.CommissionAmount)
		group.Count++
	}
	return summary, nil
}
