package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/billing"
	"github.com/mandi/backend/internal/domain/ledger"
)

// =============================================================================
// Merchant DTOs
// =============================================================================

// CreateMerchantRequest represents a request to create a new merchant
type CreateMerchantRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	BusinessName   string           `json:"business_name" binding:"max=200"`
	Mobile         string           `json:"mobile" binding:"required,max=20"`
	OpeningBalance *decimal.Decimal `json:"opening_balance"`
}

// UpdateMerchantRequest represents a request to update a merchant
type UpdateMerchantRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	BusinessName   *string          `json:"business_name" binding:"omitempty,max=200"`
	Mobile         *string          `json:"mobile" binding:"omitempty,max=20"`
	OpeningBalance *decimal.Decimal `json:"opening_balance"`
}

// MerchantResponse represents a merchant in API responses
type MerchantResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	BusinessName   string          `json:"business_name"`
	Mobile         string          `json:"mobile"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TradeResponse is one bill item attributed to a merchant, joined with the
// parent bill's identity.
type TradeResponse struct {
	ItemID     uuid.UUID       `json:"item_id"`
	BillID     uuid.UUID       `json:"bill_id"`
	BillNumber string          `json:"bill_number"`
	FarmerName string          `json:"farmer_name"`
	Vegetable  string          `json:"vegetable"`
	Bags       int64           `json:"bags"`
	Weight     decimal.Decimal `json:"weight"`
	Rate       decimal.Decimal `json:"rate"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}

// MerchantDetailResponse is the full merchant statement: profile, trades,
// payment entries and derived totals.
type MerchantDetailResponse struct {
	Merchant     MerchantResponse      `json:"merchant"`
	Trades       []TradeResponse       `json:"trades"`
	Transactions []TransactionResponse `json:"transactions"`
	TotalTrade   decimal.Decimal       `json:"total_trade"`
	TotalCredit  decimal.Decimal       `json:"total_credit"`
	Balance      decimal.Decimal       `json:"balance"`
}

// MerchantDaySummaryResponse aggregates one merchant's trades for a single
// day. Commission is the 2% cut on the merchant's total for that day.
type MerchantDaySummaryResponse struct {
	MerchantID  uuid.UUID       `json:"merchant_id"`
	Name        string          `json:"name"`
	TotalBags   int64           `json:"total_bags"`
	TotalWeight decimal.Decimal `json:"total_weight"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Commission  decimal.Decimal `json:"commission"`
	Trades      []TradeResponse `json:"trades"`
}

// DaySummaryResponse is the full day report: per-merchant groups plus grand
// totals across all merchants that traded that day.
type DaySummaryResponse struct {
	Date            string                       `json:"date"`
	Merchants       []MerchantDaySummaryResponse `json:"merchants"`
	TotalBags       int64                        `json:"total_bags"`
	TotalWeight     decimal.Decimal              `json:"total_weight"`
	TotalAmount     decimal.Decimal              `json:"total_amount"`
	TotalCommission decimal.Decimal              `json:"total_commission"`
}

// =============================================================================
// Transaction DTOs
// =============================================================================

// CreateCreditRequest represents a request to record a payment from a merchant
type CreateCreditRequest struct {
	MerchantID  uuid.UUID       `json:"merchant_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentMode string          `json:"payment_mode" binding:"required,max=50"`
	Description string          `json:"description" binding:"max=500"`
}

// UpdateCreditRequest represents a request to update a payment entry
type UpdateCreditRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	PaymentMode *string          `json:"payment_mode" binding:"omitempty,max=50"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	MerchantID      uuid.UUID       `json:"merchant_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMode     string          `json:"payment_mode"`
	TransactionType string          `json:"transaction_type"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"created_at"`
}

// =============================================================================
// Income DTOs
// =============================================================================

// IncomeResponse represents one commission income record
type IncomeResponse struct {
	ID               uuid.UUID       `json:"id"`
	BillID           uuid.UUID       `json:"bill_id"`
	MerchantID       uuid.UUID       `json:"merchant_id"`
	TradeAmount      decimal.Decimal `json:"trade_amount"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	Date             time.Time       `json:"date"`
}

// IncomeGroupResponse is one (date, merchant) bucket of the income summary
type IncomeGroupResponse struct {
	Date             time.Time       `json:"date"`
	MerchantID       uuid.UUID       `json:"merchant_id"`
	TradeAmount      decimal.Decimal `json:"trade_amount"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	Count            int             `json:"count"`
}

// IncomeSummaryResponse aggregates commission income over a date range
type IncomeSummaryResponse struct {
	TotalTrade      decimal.Decimal       `json:"total_trade"`
	TotalCommission decimal.Decimal       `json:"total_commission"`
	Count           int                   `json:"count"`
	Groups          []IncomeGroupResponse `json:"groups"`
	Incomes         []IncomeResponse      `json:"incomes"`
}

// =============================================================================
// Converters
// =============================================================================

func toMerchantResponse(m *ledger.Merchant) MerchantResponse {
	return MerchantResponse{
		ID:             m.ID,
		Name:           m.Name,
		BusinessName:   m.BusinessName,
		Mobile:         m.Mobile,
		OpeningBalance: m.OpeningBalance,
		CurrentBalance: m.CurrentBalance,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toTransactionResponse(t *ledger.CreditTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		MerchantID:      t.MerchantID,
		Amount:          t.Amount,
		PaymentMode:     t.PaymentMode,
		TransactionType: t.TransactionType.String(),
		Description:     t.Description,
		CreatedAt:       t.CreatedAt,
	}
}

func toTradeResponse(tr *billing.MerchantTrade) TradeResponse {
	return TradeResponse{
		ItemID:     tr.ItemID,
		BillID:     tr.BillID,
		BillNumber: tr.BillNumber,
		FarmerName: tr.FarmerName,
		Vegetable:  tr.Vegetable,
		Bags:       tr.Bags,
		Weight:     tr.Weight,
		Rate:       tr.Rate,
		Amount:     tr.Amount,
		Date:       tr.Date,
	}
}

func toIncomeResponse(i *ledger.AdhatiyaIncome) IncomeResponse {
	return IncomeResponse{
		ID:               i.ID,
		BillID:           i.BillID,
		MerchantID:       i.MerchantID,
		TradeAmount:      i.TradeAmount,
		CommissionRate:   i.CommissionRate,
		CommissionAmount: i.CommissionAmount,
		Date:             i.Date,
	}
}
