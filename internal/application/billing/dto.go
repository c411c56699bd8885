package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/billing"
)

// =============================================================================
// Bill DTOs
// =============================================================================

// BillItemRequest is one vegetable line in a create or update request.
// Amount is the negotiated line total and is stored as given.
type BillItemRequest struct {
	Vegetable  string          `json:"vegetable" binding:"required,min=1,max=100"`
	Bags       int64           `json:"bags"`
	Weight     decimal.Decimal `json:"weight"`
	Rate       decimal.Decimal `json:"rate"`
	Amount     decimal.Decimal `json:"amount"`
	MerchantID *uuid.UUID      `json:"merchant_id"`
}

// CreateBillRequest represents a request to create a new bill
type CreateBillRequest struct {
	FarmerName   string            `json:"farmer_name" binding:"required,min=1,max=200"`
	FarmerMobile string            `json:"farmer_mobile" binding:"max=20"`
	VillageName  string            `json:"village_name" binding:"required,min=1,max=200"`
	MerchantID   *uuid.UUID        `json:"merchant_id"`
	Items        []BillItemRequest `json:"items" binding:"required,min=1,dive"`
	Himmali      decimal.Decimal   `json:"himmali"`
	Bharai       decimal.Decimal   `json:"bharai"`
	MotorBhada   decimal.Decimal   `json:"motor_bhada"`
	OtherCharges decimal.Decimal   `json:"other_charges"`
}

// UpdateBillRequest replaces a bill's contents wholesale. The bill number
// never changes.
type UpdateBillRequest struct {
	FarmerName   string            `json:"farmer_name" binding:"max=200"`
	FarmerMobile string            `json:"farmer_mobile" binding:"max=20"`
	VillageName  string            `json:"village_name" binding:"max=200"`
	MerchantID   *uuid.UUID        `json:"merchant_id"`
	Items        []BillItemRequest `json:"items" binding:"required,min=1,dive"`
	Himmali      decimal.Decimal   `json:"himmali"`
	Bharai       decimal.Decimal   `json:"bharai"`
	MotorBhada   decimal.Decimal   `json:"motor_bhada"`
	OtherCharges decimal.Decimal   `json:"other_charges"`
}

// ListBillsQuery narrows bill listings
type ListBillsQuery struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	FarmerName  string
	VillageName string
	MerchantID  *uuid.UUID
	Page        int
	PageSize    int
}

// BillItemResponse represents a bill line in API responses
type BillItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	Vegetable  string          `json:"vegetable"`
	Bags       int64           `json:"bags"`
	Weight     decimal.Decimal `json:"weight"`
	Rate       decimal.Decimal `json:"rate"`
	Amount     decimal.Decimal `json:"amount"`
	MerchantID *uuid.UUID      `json:"merchant_id"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID           uuid.UUID          `json:"id"`
	BillNumber   string             `json:"bill_number"`
	FarmerName   string             `json:"farmer_name"`
	FarmerMobile string             `json:"farmer_mobile"`
	VillageName  string             `json:"village_name"`
	MerchantID   *uuid.UUID         `json:"merchant_id"`
	Items        []BillItemResponse `json:"items"`
	TotalBags    int64              `json:"total_bags"`
	TotalWeight  decimal.Decimal    `json:"total_weight"`
	Himmali      decimal.Decimal    `json:"himmali"`
	Bharai       decimal.Decimal    `json:"bharai"`
	MotorBhada   decimal.Decimal    `json:"motor_bhada"`
	OtherCharges decimal.Decimal    `json:"other_charges"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	GrandTotal   decimal.Decimal    `json:"grand_total"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// FarmerDaySummaryResponse aggregates one farmer's bills for a single day.
type FarmerDaySummaryResponse struct {
	FarmerName  string          `json:"farmer_name"`
	VillageName string          `json:"village_name"`
	BillCount   int             `json:"bill_count"`
	TotalBags   int64           `json:"total_bags"`
	TotalWeight decimal.Decimal `json:"total_weight"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// =============================================================================
// Converters
// =============================================================================

func toBillResponse(b *billing.Bill) BillResponse {
	items := make([]BillItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, BillItemResponse{
			ID:         item.ID,
			Vegetable:  item.Vegetable,
			Bags:       item.Bags,
			Weight:     item.Weight,
			Rate:       item.Rate,
			Amount:     item.Amount,
			MerchantID: item.MerchantID,
		})
	}
	return BillResponse{
		ID:           b.ID,
		BillNumber:   b.BillNumber,
		FarmerName:   b.FarmerName,
		FarmerMobile: b.FarmerMobile,
		VillageName:  b.VillageName,
		MerchantID:   b.MerchantID,
		Items:        items,
		TotalBags:    b.TotalBags,
		TotalWeight:  b.TotalWeight,
		Himmali:      b.Himmali,
		Bharai:       b.Bharai,
		MotorBhada:   b.MotorBhada,
		OtherCharges: b.OtherCharges,
		Subtotal:     b.Subtotal,
		GrandTotal:   b.GrandTotal,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
