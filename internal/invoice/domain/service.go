package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/smallbiznis/docbill/internal/document"
	"github.com/smallbiznis/docbill/pkg/db/pagination"
)

// SaveInvoiceRequest carries the editable invoice fields. Reference is
// optional: when empty a fresh sequence number is allocated, otherwise
// the numeric suffix keys an upsert so a re-save under a corrected
// reference string updates the existing row instead of duplicating it.
type SaveInvoiceRequest struct {
	Reference       string              `json:"reference"`
	CustomerID      string              `json:"customer_id"`
	ProjectName     string              `json:"project_name"`
	ProjectLocation string              `json:"project_location"`
	LineItems       []document.LineItem `json:"line_items"`
	Total           decimal.Decimal     `json:"total"`
	Deposit         decimal.Decimal     `json:"deposit"`
	CheckNumber     string              `json:"check_number"`
}

type ListInvoiceRequest struct {
	pagination.Pagination
	Paid *bool `form:"paid"`
	// SortBy selects an allow-listed column for a sorted single-page view.
	// Sorted views do not paginate; page tokens only apply to the default
	// recency order.
	SortBy string `form:"sort_by"`
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	Save(ctx context.Context, req SaveInvoiceRequest) (*Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByRef(ctx context.Context, ref string) (*Invoice, error)

	// TogglePaid flips the paid flag and returns the updated invoice.
	TogglePaid(ctx context.Context, ref string) (*Invoice, error)

	// SetInternalCost records the private cost basis for the profit
	// report. The value is write-only from the API's point of view.
	SetInternalCost(ctx context.Context, ref string, cost decimal.Decimal) error
}

var (
	ErrInvoiceNotFound = errors.New("invoice_not_found")
	ErrInvalidCost     = errors.New("invalid_internal_cost")
)
