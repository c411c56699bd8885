package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/mandi/backend/internal/domain/billing"
	"github.com/mandi/backend/internal/domain/shared"
)

func testBill(tenantID uuid.UUID) *billing.Bill {
	now := time.Now()
	return &billing.Bill{
		TenantAggregateRoot: shared.TenantAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
				Version:    1,
			},
			TenantID: tenantID,
		},
		BillNumber:  "BILL-20250314120000-0042",
		FarmerName:  "Kishan",
		VillageName: "Rampur",
		TotalBags:   1,
	}
}

func TestGormBillRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("duplicate bill number maps to conflict", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormBillRepository(db)

		mock.ExpectExec(`INSERT INTO "bills"`).
			WillReturnError(&pgconn.PgError{
				Code:           "23505",
				ConstraintName: "idx_bills_tenant_bill_number",
			})

		err := repo.Create(ctx, testBill(tenantID))
		assert.ErrorIs(t, err, shared.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other database errors pass through", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormBillRepository(db)

		mock.ExpectExec(`INSERT INTO "bills"`).
			WillReturnError(errors.New("connection reset"))

		err := repo.Create(ctx, testBill(tenantID))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, shared.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert bill: %w", dup)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
}
