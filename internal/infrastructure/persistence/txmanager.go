package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/mandi/backend/internal/domain/shared"
)

type txContextKey struct{}

// GormTxManager implements shared.TxManager over a GORM connection. The
// transaction handle travels in the context, so repositories transparently
// join an ambient transaction when one is open.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new GormTxManager
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithinTx runs fn inside a database transaction. Nested calls join the
// transaction already carried by the context instead of opening a new one.
func (m *GormTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

var _ shared.TxManager = (*GormTxManager)(nil)

func txFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// dbFromContext returns the ambient transaction if one is open, otherwise
// the repository's own connection bound to ctx.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return fallback.WithContext(ctx)
}
