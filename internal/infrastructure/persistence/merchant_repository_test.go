package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mandi/backend/internal/domain/shared"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func merchantColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "version", "tenant_id",
		"name", "business_name", "mobile", "opening_balance", "current_balance",
	}
}

func TestGormMerchantRepositoryFindByIDForTenant(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	merchantID := uuid.New()

	t.Run("maps the row to the domain merchant", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormMerchantRepository(db)

		now := time.Now()
		mock.ExpectQuery(`SELECT \* FROM "merchants" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, merchantID, 1).
			WillReturnRows(sqlmock.NewRows(merchantColumns()).
				AddRow(merchantID, now, now, 1, tenantID,
					"Ramesh", "Ramesh Traders", "9876543210", "500", "1200"))

		merchant, err := repo.FindByIDForTenant(ctx, tenantID, merchantID)
		require.NoError(t, err)
		assert.Equal(t, merchantID, merchant.ID)
		assert.Equal(t, tenantID, merchant.TenantID)
		assert.Equal(t, "Ramesh", merchant.Name)
		assert.True(t, merchant.OpeningBalance.Equal(decimal.RequireFromString("500")))
		assert.True(t, merchant.CurrentBalance.Equal(decimal.RequireFromString("1200")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormMerchantRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "merchants" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, merchantID, 1).
			WillReturnRows(sqlmock.NewRows(merchantColumns()))

		_, err := repo.FindByIDForTenant(ctx, tenantID, merchantID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("locked read adds FOR UPDATE", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormMerchantRepository(db)

		now := time.Now()
		mock.ExpectQuery(`SELECT \* FROM "merchants" WHERE tenant_id = \$1 AND id = \$2 .* FOR UPDATE`).
			WithArgs(tenantID, merchantID, 1).
			WillReturnRows(sqlmock.NewRows(merchantColumns()).
				AddRow(merchantID, now, now, 1, tenantID,
					"Ramesh", "", "9876543210", "0", "0"))

		_, err := repo.FindByIDForTenantLocked(ctx, tenantID, merchantID)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMerchantRepositoryUpdateBalance(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	merchantID := uuid.New()

	t.Run("writes the cached balance", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormMerchantRepository(db)

		mock.ExpectExec(`UPDATE "merchants" SET "current_balance"=\$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateBalance(ctx, tenantID, merchantID, decimal.RequireFromString("1200"))
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows maps to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormMerchantRepository(db)

		mock.ExpectExec(`UPDATE "merchants" SET "current_balance"=\$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateBalance(ctx, tenantID, merchantID, decimal.Zero)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMerchantRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	merchantID := uuid.New()

	t.Run("removes the merchant with its ledger entries", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormMerchantRepository(db)

		mock.ExpectExec(`DELETE FROM "transactions" WHERE tenant_id = \$1 AND merchant_id = \$2`).
			WithArgs(tenantID, merchantID).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM "merchants" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, merchantID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, tenantID, merchantID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent merchant maps to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormMerchantRepository(db)

		mock.ExpectExec(`DELETE FROM "transactions"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "merchants"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, tenantID, merchantID), shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
