package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/billing"
)

// BillModel is the persistence model for bills
type BillModel struct {
	TenantAggregateModel
	// Unique per tenant; the composite index lives in the migrations.
	BillNumber   string          `gorm:"size:50;not null;index"`
	FarmerName   string          `gorm:"size:200;not null;index"`
	FarmerMobile string          `gorm:"size:20"`
	VillageName  string          `gorm:"size:200;not null;index"`
	MerchantID   *uuid.UUID      `gorm:"type:uuid;index"`
	TotalBags    int64           `gorm:"not null;default:0"`
	TotalWeight  decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Himmali      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Bharai       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MotorBhada   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	OtherCharges decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	GrandTotal   decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	Items []BillItemModel `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// BillItemModel is the persistence model for bill line items
type BillItemModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	BillID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenantID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Vegetable  string          `gorm:"size:100;not null"`
	Bags       int64           `gorm:"not null;default:0"`
	Weight     decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Rate       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MerchantID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BillItemModel) TableName() string {
	return "bill_items"
}

// ToDomain converts BillModel to a domain Bill with its items
func (m *BillModel) ToDomain() *billing.Bill {
	items := make([]billing.BillItem, 0, len(m.Items))
	for i := range m.Items {
		items = append(items, m.Items[i].ToDomain())
	}
	return &billing.Bill{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		BillNumber:          m.BillNumber,
		FarmerName:          m.FarmerName,
		FarmerMobile:        m.FarmerMobile,
		VillageName:         m.VillageName,
		MerchantID:          m.MerchantID,
		Items:               items,
		TotalBags:           m.TotalBags,
		TotalWeight:         m.TotalWeight,
		Himmali:             m.Himmali,
		Bharai:              m.Bharai,
		MotorBhada:          m.MotorBhada,
		OtherCharges:        m.OtherCharges,
		Subtotal:            m.Subtotal,
		GrandTotal:          m.GrandTotal,
	}
}

// FromDomain populates BillModel from a domain Bill
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.BillNumber = b.BillNumber
	m.FarmerName = b.FarmerName
	m.FarmerMobile = b.FarmerMobile
	m.VillageName = b.VillageName
	m.MerchantID = b.MerchantID
	m.TotalBags = b.TotalBags
	m.TotalWeight = b.TotalWeight
	m.Himmali = b.Himmali
	m.Bharai = b.Bharai
	m.MotorBhada = b.MotorBhada
	m.OtherCharges = b.OtherCharges
	m.Subtotal = b.Subtotal
	m.GrandTotal = b.GrandTotal

	m.Items = make([]BillItemModel, 0, len(b.Items))
	for i := range b.Items {
		var item BillItemModel
		item.FromDomain(&b.Items[i])
		m.Items = append(m.Items, item)
	}
}

// ToDomain converts BillItemModel to a domain BillItem
func (m *BillItemModel) ToDomain() billing.BillItem {
	return billing.BillItem{
		ID:         m.ID,
		BillID:     m.BillID,
		TenantID:   m.TenantID,
		Vegetable:  m.Vegetable,
		Bags:       m.Bags,
		Weight:     m.Weight,
		Rate:       m.Rate,
		Amount:     m.Amount,
		MerchantID: m.MerchantID,
		CreatedAt:  m.CreatedAt,
	}
}

// FromDomain populates BillItemModel from a domain BillItem
func (m *BillItemModel) FromDomain(item *billing.BillItem) {
	m.ID = item.ID
	m.BillID = item.BillID
	m.TenantID = item.TenantID
	m.Vegetable = item.Vegetable
	m.Bags = item.Bags
	m.Weight = item.Weight
	m.Rate = item.Rate
	m.Amount = item.Amount
	m.MerchantID = item.MerchantID
	m.CreatedAt = item.CreatedAt
}
