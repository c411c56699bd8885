package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mandi/backend/internal/domain/ledger"
	"github.com/mandi/backend/internal/domain/shared"
	"github.com/mandi/backend/internal/infrastructure/persistence/models"
)

// GormMerchantRepository implements ledger.MerchantRepository using GORM
type GormMerchantRepository struct {
	db *gorm.DB
}

// NewGormMerchantRepository creates a new GormMerchantRepository
func NewGormMerchantRepository(db *gorm.DB) *GormMerchantRepository {
	return &GormMerchantRepository{db: db}
}

// Create persists a new merchant
func (r *GormMerchantRepository) Create(ctx context.Context, merchant *ledger.Merchant) error {
	var model models.MerchantModel
	model.FromDomain(merchant)
	return dbFromContext(ctx, r.db).Create(&model).Error
}

// Save updates an existing merchant
func (r *GormMerchantRepository) Save(ctx context.Context, merchant *ledger.Merchant) error {
	var model models.MerchantModel
	model.FromDomain(merchant)
	result := dbFromContext(ctx, r.db).
		Model(&models.MerchantModel{}).
		Where("tenant_id = ? AND id = ?", merchant.TenantID, merchant.ID).
		Updates(map[string]any{
			"name":            model.Name,
			"business_name":   model.BusinessName,
			"mobile":          model.Mobile,
			"opening_balance": model.OpeningBalance,
			"current_balance": model.CurrentBalance,
			"updated_at":      model.UpdatedAt,
			"version":         gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a merchant and its ledger entries
func (r *GormMerchantRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	db := dbFromContext(ctx, r.db)
	if err := db.
		Where("tenant_id = ? AND merchant_id = ?", tenantID, id).
		Delete(&models.TransactionModel{}).Error; err != nil {
		return err
	}
	result := db.
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.MerchantModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByIDForTenant finds a merchant by ID within a tenant
func (r *GormMerchantRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Merchant, error) {
	return r.findOne(ctx, tenantID, id, false)
}

// FindByIDForTenantLocked loads the merchant with a row-level exclusive lock
func (r *GormMerchantRepository) FindByIDForTenantLocked(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Merchant, error) {
	return r.findOne(ctx, tenantID, id, true)
}

func (r *GormMerchantRepository) findOne(ctx context.Context, tenantID, id uuid.UUID, locked bool) (*ledger.Merchant, error) {
	query := dbFromContext(ctx, r.db)
	if locked {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var model models.MerchantModel
	if err := query.
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all merchants for a tenant
func (r *GormMerchantRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*ledger.Merchant, error) {
	var merchantModels []models.MerchantModel
	query := dbFromContext(ctx, r.db).
		Model(&models.MerchantModel{}).
		Where("tenant_id = ?", tenantID).
		Order("name asc")
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset((filter.Page - 1) * filter.PageSize)
	}
	if err := query.Find(&merchantModels).Error; err != nil {
		return nil, err
	}

	merchants := make([]*ledger.Merchant, 0, len(merchantModels))
	for i := range merchantModels {
		merchants = append(merchants, merchantModels[i].ToDomain())
	}
	return merchants, nil
}

// FindByIDs loads the given merchants in one query; missing IDs are skipped
func (r *GormMerchantRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ledger.Merchant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var merchantModels []models.MerchantModel
	if err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&merchantModels).Error; err != nil {
		return nil, err
	}

	merchants := make([]*ledger.Merchant, 0, len(merchantModels))
	for i := range merchantModels {
		merchants = append(merchants, merchantModels[i].ToDomain())
	}
	return merchants, nil
}

// UpdateBalance refreshes the cached current_balance column
func (r *GormMerchantRepository) UpdateBalance(ctx context.Context, tenantID, id uuid.UUID, balance decimal.Decimal) error {
	result := dbFromContext(ctx, r.db).
		Model(&models.MerchantModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("current_balance", balance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ ledger.MerchantRepository = (*GormMerchantRepository)(nil)
