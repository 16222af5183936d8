package domain

import (
	"context"
	"errors"
)

type Service interface {
	// YearToDate summarizes invoices issued since January 1st of the
	// given year in the configured local timezone. A zero year means
	// the current year.
	YearToDate(ctx context.Context, year int) (ProfitSummary, error)
}

var ErrInvalidYear = errors.New("invalid_report_year")
