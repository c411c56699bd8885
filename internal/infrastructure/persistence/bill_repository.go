package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mandi/backend/internal/domain/billing"
	"github.com/mandi/backend/internal/domain/shared"
	"github.com/mandi/backend/internal/infrastructure/persistence/models"
)

// GormBillRepository implements billing.BillRepository using GORM.
// Bills and their items are persisted as one aggregate: items are inserted
// with the bill and replaced wholesale on save.
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// Create persists the bill together with its items. A concurrent create can
// slip the same bill number past the pre-insert existence check; the unique
// index rejects it here, and the caller regenerates the number.
func (r *GormBillRepository) Create(ctx context.Context, bill *billing.Bill) error {
	var model models.BillModel
	model.FromDomain(bill)
	if err := dbFromContext(ctx, r.db).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrConflict
		}
		return err
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique-index
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Save persists the bill header and replaces its items wholesale
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	db := dbFromContext(ctx, r.db)

	var model models.BillModel
	model.FromDomain(bill)

	result := db.
		Model(&models.BillModel{}).
		Where("tenant_id = ? AND id = ?", bill.TenantID, bill.ID).
		Updates(map[string]any{
			"farmer_name":   model.FarmerName,
			"farmer_mobile": model.FarmerMobile,
			"village_name":  model.VillageName,
			"merchant_id":   model.MerchantID,
			"total_bags":    model.TotalBags,
			"total_weight":  model.TotalWeight,
			"himmali":       model.Himmali,
			"bharai":        model.Bharai,
			"motor_bhada":   model.MotorBhada,
			"other_charges": model.OtherCharges,
			"subtotal":      model.Subtotal,
			"grand_total":   model.GrandTotal,
			"updated_at":    model.UpdatedAt,
			"version":       gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}

	if err := db.
		Where("tenant_id = ? AND bill_id = ?", bill.TenantID, bill.ID).
		Delete(&models.BillItemModel{}).Error; err != nil {
		return err
	}
	if len(model.Items) == 0 {
		return nil
	}
	return db.Create(&model.Items).Error
}

// Delete removes the bill and cascades to its items
func (r *GormBillRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	db := dbFromContext(ctx, r.db)
	if err := db.
		Where("tenant_id = ? AND bill_id = ?", tenantID, id).
		Delete(&models.BillItemModel{}).Error; err != nil {
		return err
	}
	result := db.
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.BillModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByIDForTenant loads the bill with its items
func (r *GormBillRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByNumber reports whether the tenant already has a bill with the number
func (r *GormBillRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (bool, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&models.BillModel{}).
		Where("tenant_id = ? AND bill_number = ?", tenantID, billNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns bills matching the filter, newest first, without items
func (r *GormBillRepository) List(ctx context.Context, tenantID uuid.UUID, filter billing.BillFilter) ([]*billing.Bill, error) {
	query := dbFromContext(ctx, r.db).
		Model(&models.BillModel{}).
		Where("tenant_id = ?", tenantID)

	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}
	if filter.FarmerName != "" {
		query = query.Where("farmer_name ILIKE ?", "%"+filter.FarmerName+"%")
	}
	if filter.VillageName != "" {
		query = query.Where("village_name ILIKE ?", "%"+filter.VillageName+"%")
	}
	if filter.MerchantID != nil {
		query = query.Where(
			"merchant_id = ? OR id IN (?)",
			*filter.MerchantID,
			dbFromContext(ctx, r.db).
				Model(&models.BillItemModel{}).
				Select("bill_id").
				Where("tenant_id = ? AND merchant_id = ?", tenantID, *filter.MerchantID),
		)
	}

	query = query.Order("created_at desc")
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset((filter.Page - 1) * filter.PageSize)
	}

	var billModels []models.BillModel
	if err := query.Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]*billing.Bill, 0, len(billModels))
	for i := range billModels {
		bills = append(bills, billModels[i].ToDomain())
	}
	return bills, nil
}

// FindByDate returns bills created on the given calendar day, with items
func (r *GormBillRepository) FindByDate(ctx context.Context, tenantID uuid.UUID, day time.Time) ([]*billing.Bill, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var billModels []models.BillModel
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, start, end).
		Order("created_at asc").
		Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]*billing.Bill, 0, len(billModels))
	for i := range billModels {
		bills = append(bills, billModels[i].ToDomain())
	}
	return bills, nil
}

var _ billing.BillRepository = (*GormBillRepository)(nil)

// GormBillItemRepository implements billing.BillItemRepository using GORM
type GormBillItemRepository struct {
	db *gorm.DB
}

// NewGormBillItemRepository creates a new GormBillItemRepository
func NewGormBillItemRepository(db *gorm.DB) *GormBillItemRepository {
	return &GormBillItemRepository{db: db}
}

// SumAmountByMerchant sums item amounts attributed to a merchant
func (r *GormBillItemRepository) SumAmountByMerchant(ctx context.Context, tenantID, merchantID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := dbFromContext(ctx, r.db).
		Model(&models.BillItemModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND merchant_id = ?", tenantID, merchantID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

const tradeSelect = "bill_items.id as item_id, bill_items.bill_id, bills.bill_number, bills.farmer_name, " +
	"bill_items.vegetable, bill_items.bags, bill_items.weight, bill_items.rate, bill_items.amount, " +
	"bill_items.created_at as date"

// FindTradesByMerchant returns the merchant's trades joined with bill identity
func (r *GormBillItemRepository) FindTradesByMerchant(ctx context.Context, tenantID, merchantID uuid.UUID) ([]*billing.MerchantTrade, error) {
	return r.findTrades(ctx, tenantID, merchantID, nil)
}

// FindTradesByMerchantAndDate restricts trades to one calendar day
func (r *GormBillItemRepository) FindTradesByMerchantAndDate(ctx context.Context, tenantID, merchantID uuid.UUID, day time.Time) ([]*billing.MerchantTrade, error) {
	return r.findTrades(ctx, tenantID, merchantID, &day)
}

func (r *GormBillItemRepository) findTrades(ctx context.Context, tenantID, merchantID uuid.UUID, day *time.Time) ([]*billing.MerchantTrade, error) {
	query := dbFromContext(ctx, r.db).
		Model(&models.BillItemModel{}).
		Select(tradeSelect).
		Joins("JOIN bills ON bills.id = bill_items.bill_id").
		Where("bill_items.tenant_id = ? AND bill_items.merchant_id = ?", tenantID, merchantID)

	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.Add(24 * time.Hour)
		query = query.Where("bill_items.created_at >= ? AND bill_items.created_at < ?", start, end)
	}

	var trades []*billing.MerchantTrade
	if err := query.Order("bill_items.created_at desc").Scan(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

var _ billing.BillItemRepository = (*GormBillItemRepository)(nil)
