package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"

	"gorm.io/gorm"
)

type txKey struct{}

type gormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor creates a Transactor whose transaction is visible to every repository of this package
func NewGormTransactor(db *gorm.DB) shared.Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		// Already inside a transaction, join it
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or db scoped to ctx
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// writeError classifies driver errors of insert and update statements
func writeError(action string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(fmt.Sprintf("%s: record already exists", action))
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// readError maps a missing row to a not found error naming what was looked up
func readError(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(fmt.Sprintf("%s not found", what))
	}
	return fmt.Errorf("failed to fetch %s: %w", what, err)
}

func paginate(q *gorm.DB, p shared.Pagination) *gorm.DB {
	if p.Limit > 0 {
		q = q.Limit(p.Limit)
	}
	if off := p.Offset(); off > 0 {
		q = q.Offset(off)
	}
	return q
}
