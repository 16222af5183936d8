// Package option provides composable query modifiers for gorm queries.
package option

import (
	"strings"

	"github.com/smallbiznis/docbill/pkg/db/pagination"
	"gorm.io/gorm"
)

// Option mutates a gorm query before execution.
type Option func(*gorm.DB) *gorm.DB

// QuerySortBy restricts ordering to an allow list of columns.
type QuerySortBy struct {
	Allow map[string]bool
	Field string
	Desc  bool
}

// WithSortBy orders the query by an allowed column, defaulting to
// created_at descending when the requested field is not allowed.
func WithSortBy(sort QuerySortBy) Option {
	return func(tx *gorm.DB) *gorm.DB {
		field := strings.TrimSpace(sort.Field)
		if field == "" || !sort.Allow[field] {
			field = "created_at"
			sort.Desc = true
		}
		direction := "ASC"
		if sort.Desc {
			direction = "DESC"
		}
		return tx.Order(field + " " + direction)
	}
}

// WithLimit caps the number of returned rows.
func WithLimit(limit int) Option {
	return func(tx *gorm.DB) *gorm.DB {
		if limit > 0 {
			tx = tx.Limit(limit)
		}
		return tx
	}
}

// ApplyPagination applies a cursor token and over-fetches one row so the
// caller can detect whether more pages exist.
func ApplyPagination(p pagination.Pagination) Option {
	return func(tx *gorm.DB) *gorm.DB {
		cursor, err := pagination.DecodeCursor(p.PageToken)
		if err == nil && cursor.LastID != "" {
			tx = tx.Where("id < ?", cursor.LastID)
		}
		return tx.Order("id DESC").Limit(p.Limit() + 1)
	}
}
