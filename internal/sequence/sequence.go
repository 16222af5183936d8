// Package sequence assigns the shared proposal/invoice numbering.
//
// Proposals and invoices draw from one monotonic counter so a converted
// pair can carry the same human-readable number without colliding with
// unrelated documents.
package sequence

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Next returns max(number) across both document tables plus one. It must be
// called inside the transaction that inserts the numbered record; the
// unique index on number is the backstop for concurrent allocations.
func Next(ctx context.Context, tx *gorm.DB) (int64, error) {
	var maxProposal, maxInvoice int64
	if err := tx.WithContext(ctx).
		Raw(`SELECT COALESCE(MAX(number), 0) FROM proposals`).
		Scan(&maxProposal).Error; err != nil {
		return 0, err
	}
	if err := tx.WithContext(ctx).
		Raw(`SELECT COALESCE(MAX(number), 0) FROM invoices`).
		Scan(&maxInvoice).Error; err != nil {
		return 0, err
	}
	next := maxProposal + 1
	if maxInvoice >= maxProposal {
		next = maxInvoice + 1
	}
	return next, nil
}

// Allocate runs fn with a freshly computed number inside a transaction.
// A duplicate-key failure means a concurrent caller won the number; the
// allocation is retried once with a recomputed number before surfacing.
func Allocate(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB, number int64) error) error {
	attempt := func() error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			number, err := Next(ctx, tx)
			if err != nil {
				return err
			}
			return fn(tx, number)
		})
	}

	err := attempt()
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		err = attempt()
	}
	return err
}
