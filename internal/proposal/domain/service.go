package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/docbill/internal/document"
	invoicedomain "github.com/smallbiznis/docbill/internal/invoice/domain"
	"github.com/smallbiznis/docbill/pkg/db/pagination"
)

type CreateProposalRequest struct {
	CustomerID      string              `json:"customer_id"`
	ProjectName     string              `json:"project_name"`
	ProjectLocation string              `json:"project_location"`
	LineItems       []document.LineItem `json:"line_items"`
	Notes           string              `json:"notes"`
}

type ListProposalRequest struct {
	pagination.Pagination
	Status Status `form:"status"`
	// SortBy selects an allow-listed column for a sorted single-page view.
	// Sorted views do not paginate; page tokens only apply to the default
	// recency order.
	SortBy string `form:"sort_by"`
}

type ListProposalResponse struct {
	pagination.PageInfo
	Proposals []Proposal `json:"proposals"`
}

type Service interface {
	Create(ctx context.Context, req CreateProposalRequest) (*Proposal, error)
	List(ctx context.Context, req ListProposalRequest) (ListProposalResponse, error)
	GetByRef(ctx context.Context, ref string) (*Proposal, error)

	// Close moves an open proposal to closed. Closed and converted are
	// terminal, so any other starting state is rejected.
	Close(ctx context.Context, ref string) (*Proposal, error)

	// Convert creates the draft invoice shell carrying the proposal's
	// number, customer, project fields and line items, and marks the
	// proposal converted. Amounts on the shell stay zero until the
	// invoice is saved with real figures.
	Convert(ctx context.Context, ref string) (*invoicedomain.Invoice, error)
}

var (
	ErrProposalNotFound = errors.New("proposal_not_found")
	ErrProposalNotOpen  = errors.New("proposal_not_open")
	ErrAlreadyConverted = errors.New("proposal_already_converted")
)
