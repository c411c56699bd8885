package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mandi/backend/internal/domain/ledger"
	"github.com/mandi/backend/internal/domain/shared"
	"github.com/mandi/backend/internal/infrastructure/persistence/models"
)

// GormTransactionRepository implements ledger.CreditTransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create persists a new ledger entry
func (r *GormTransactionRepository) Create(ctx context.Context, tx *ledger.CreditTransaction) error {
	var model models.TransactionModel
	model.FromDomain(tx)
	return dbFromContext(ctx, r.db).Create(&model).Error
}

// Save updates an existing ledger entry
func (r *GormTransactionRepository) Save(ctx context.Context, tx *ledger.CreditTransaction) error {
	var model models.TransactionModel
	model.FromDomain(tx)
	result := dbFromContext(ctx, r.db).
		Model(&models.TransactionModel{}).
		Where("tenant_id = ? AND id = ?", tx.TenantID, tx.ID).
		Updates(map[string]any{
			"amount":       model.Amount,
			"payment_mode": model.PaymentMode,
			"description":  model.Description,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a ledger entry
func (r *GormTransactionRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByIDForTenant finds a ledger entry by ID within a tenant
func (r *GormTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.CreditTransaction, error) {
	var model models.TransactionModel
	if err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMerchant returns all entries for a merchant, newest first
func (r *GormTransactionRepository) FindByMerchant(ctx context.Context, tenantID, merchantID uuid.UUID) ([]*ledger.CreditTransaction, error) {
	var txModels []models.TransactionModel
	if err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND merchant_id = ?", tenantID, merchantID).
		Order("created_at desc").
		Find(&txModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*ledger.CreditTransaction, 0, len(txModels))
	for i := range txModels {
		entries = append(entries, txModels[i].ToDomain())
	}
	return entries, nil
}

// FindOpening returns the merchant's synthetic opening-balance entry
func (r *GormTransactionRepository) FindOpening(ctx context.Context, tenantID, merchantID uuid.UUID) (*ledger.CreditTransaction, error) {
	var model models.TransactionModel
	if err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND merchant_id = ? AND payment_mode = ?", tenantID, merchantID, ledger.PaymentModeOpening).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SumCreditByMerchant sums credit amounts excluding the opening-balance entry
func (r *GormTransactionRepository) SumCreditByMerchant(ctx context.Context, tenantID, merchantID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := dbFromContext(ctx, r.db).
		Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND merchant_id = ? AND payment_mode <> ?", tenantID, merchantID, ledger.PaymentModeOpening).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

var _ ledger.CreditTransactionRepository = (*GormTransactionRepository)(nil)
