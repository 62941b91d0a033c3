package infrastructure

import (
	"context"

	"Paydue/internal/domain/shared"

	"gorm.io/gorm"
)

type txKey struct{}

// GormTransactor carries the open transaction in the context so every
// repository call made with that context joins it.
type GormTransactor struct {
	DB *gorm.DB
}

var _ shared.Transactor = (*GormTransactor)(nil)

func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{DB: db}
}

// WithTransaction commits when fn returns nil and rolls back otherwise. A call
// nested in another transaction runs inside the outer one.
func (t *GormTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
