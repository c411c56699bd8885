package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mandi/backend/internal/domain/ledger"
	"github.com/mandi/backend/internal/infrastructure/persistence/models"
)

// GormIncomeRepository implements ledger.IncomeRepository using GORM
type GormIncomeRepository struct {
	db *gorm.DB
}

// NewGormIncomeRepository creates a new GormIncomeRepository
func NewGormIncomeRepository(db *gorm.DB) *GormIncomeRepository {
	return &GormIncomeRepository{db: db}
}

// CreateBatch persists a batch of income rows in one insert
func (r *GormIncomeRepository) CreateBatch(ctx context.Context, incomes []*ledger.AdhatiyaIncome) error {
	if len(incomes) == 0 {
		return nil
	}
	incomeModels := make([]models.IncomeModel, 0, len(incomes))
	for _, income := range incomes {
		var model models.IncomeModel
		model.FromDomain(income)
		incomeModels = append(incomeModels, model)
	}
	return dbFromContext(ctx, r.db).Create(&incomeModels).Error
}

// DeleteByBill removes all income rows produced by a bill
func (r *GormIncomeRepository) DeleteByBill(ctx context.Context, tenantID, billID uuid.UUID) error {
	return dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND bill_id = ?", tenantID, billID).
		Delete(&models.IncomeModel{}).Error
}

// FindByDateRange returns income rows for the tenant, newest first
func (r *GormIncomeRepository) FindByDateRange(ctx context.Context, tenantID uuid.UUID, filter ledger.IncomeFilter) ([]*ledger.AdhatiyaIncome, error) {
	query := dbFromContext(ctx, r.db).
		Model(&models.IncomeModel{}).
		Where("tenant_id = ?", tenantID)
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", filter.DateFrom.Format("2006-01-02"))
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", filter.DateTo.Format("2006-01-02"))
	}

	var incomeModels []models.IncomeModel
	if err := query.Order("date desc, created_at desc").Find(&incomeModels).Error; err != nil {
		return nil, err
	}

	incomes := make([]*ledger.AdhatiyaIncome, 0, len(incomeModels))
	for i := range incomeModels {
		incomes = append(incomes, incomeModels[i].ToDomain())
	}
	return incomes, nil
}

var _ ledger.IncomeRepository = (*GormIncomeRepository)(nil)
