package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mandi/backend/internal/domain/ledger"
)

// MerchantModel is the persistence model for merchants
type MerchantModel struct {
	TenantAggregateModel
	Name           string          `gorm:"size:200;not null;index"`
	BusinessName   string          `gorm:"size:200"`
	Mobile         string          `gorm:"size:20;not null"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// TableName returns the table name for GORM
func (MerchantModel) TableName() string {
	return "merchants"
}

// ToDomain converts MerchantModel to a domain Merchant
func (m *MerchantModel) ToDomain() *ledger.Merchant {
	return &ledger.Merchant{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		BusinessName:        m.BusinessName,
		Mobile:              m.Mobile,
		OpeningBalance:      m.OpeningBalance,
		CurrentBalance:      m.CurrentBalance,
	}
}

// FromDomain populates MerchantModel from a domain Merchant
func (m *MerchantModel) FromDomain(merchant *ledger.Merchant) {
	m.FromDomainTenantAggregateRoot(merchant.TenantAggregateRoot)
	m.Name = merchant.Name
	m.BusinessName = merchant.BusinessName
	m.Mobile = merchant.Mobile
	m.OpeningBalance = merchant.OpeningBalance
	m.CurrentBalance = merchant.CurrentBalance
}

// TransactionModel is the persistence model for credit ledger entries
type TransactionModel struct {
	BaseModel
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	MerchantID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PaymentMode     string          `gorm:"size:50;not null"`
	TransactionType string          `gorm:"size:20;not null"`
	Description     string          `gorm:"size:500"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts TransactionModel to a domain CreditTransaction
func (m *TransactionModel) ToDomain() *ledger.CreditTransaction {
	return &ledger.CreditTransaction{
		BaseEntity:      m.BaseModel.ToDomain(),
		TenantID:        m.TenantID,
		MerchantID:      m.MerchantID,
		Amount:          m.Amount,
		PaymentMode:     m.PaymentMode,
		TransactionType: ledger.TransactionType(m.TransactionType),
		Description:     m.Description,
	}
}

// FromDomain populates TransactionModel from a domain CreditTransaction
func (m *TransactionModel) FromDomain(tx *ledger.CreditTransaction) {
	m.FromDomainBaseEntity(tx.BaseEntity)
	m.TenantID = tx.TenantID
	m.MerchantID = tx.MerchantID
	m.Amount = tx.Amount
	m.PaymentMode = tx.PaymentMode
	m.TransactionType = tx.TransactionType.String()
	m.Description = tx.Description
}

// IncomeModel is the persistence model for commission income records
type IncomeModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	BillID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	MerchantID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	TradeAmount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CommissionRate   decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Date             time.Time       `gorm:"type:date;not null;index"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (IncomeModel) TableName() string {
	return "adhatiya_incomes"
}

// ToDomain converts IncomeModel to a domain AdhatiyaIncome
func (m *IncomeModel) ToDomain() *ledger.AdhatiyaIncome {
	income := &ledger.AdhatiyaIncome{
		TenantID:         m.TenantID,
		BillID:           m.BillID,
		MerchantID:       m.MerchantID,
		TradeAmount:      m.TradeAmount,
		CommissionRate:   m.CommissionRate,
		CommissionAmount: m.CommissionAmount,
		Date:             m.Date,
	}
	income.ID = m.ID
	income.CreatedAt = m.CreatedAt
	income.UpdatedAt = m.UpdatedAt
	return income
}

// FromDomain populates IncomeModel from a domain AdhatiyaIncome
func (m *IncomeModel) FromDomain(income *ledger.AdhatiyaIncome) {
	m.ID = income.ID
	m.TenantID = income.TenantID
	m.BillID = income.BillID
	m.MerchantID = income.MerchantID
	m.TradeAmount = income.TradeAmount
	m.CommissionRate = income.CommissionRate
	m.CommissionAmount = income.CommissionAmount
	m.Date = income.Date
	m.CreatedAt = income.CreatedAt
	m.UpdatedAt = income.UpdatedAt
}
