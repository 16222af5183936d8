package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitSummary aggregates invoice revenue against recorded internal
// costs over a reporting window.
type ProfitSummary struct {
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	InvoiceCount int64           `json:"invoice_count"`
	PaidCount    int64           `json:"paid_count"`
	TotalBilled  decimal.Decimal `json:"total_billed"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Profit       decimal.Decimal `json:"profit"`
}
