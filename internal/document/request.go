// Package document renders customer-facing proposal and invoice PDFs.
//
// Request is a pure value assembled by the lifecycle layer; it is a strict
// subset of the persisted records and never carries internal-only fields.
package document

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes the two document types.
type Kind int

const (
	KindProposal Kind = iota
	KindInvoice
)

// String returns the lowercase name used in events and email bodies.
func (k Kind) String() string {
	if k == KindProposal {
		return "proposal"
	}
	return "invoice"
}

// Heading returns the label printed in the document metadata block.
func (k Kind) Heading() string {
	if k == KindProposal {
		return "Proposal"
	}
	return "Invoice"
}

// LineItem is one billable row. The JSON tags match the legacy line-item
// encoding stored in the line_items column.
type LineItem struct {
	Description string          `json:"Description"`
	Quantity    decimal.Decimal `json:"Qty"`
	UnitPrice   decimal.Decimal `json:"Unit Price"`
}

// LineTotal returns quantity times unit price.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Subtotal sums the line totals of a set of items.
func Subtotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// InvoiceFields groups the invoice-only rendering inputs. A proposal
// request leaves the pointer nil, so the renderer cannot print deposit,
// check number, or paid-stamp data for proposals.
type InvoiceFields struct {
	Deposit       decimal.Decimal
	CheckNumber   string
	ShowPaidStamp bool
}

// Request is the renderer's sole input.
type Request struct {
	Kind            Kind
	ReferenceNumber string

	CustomerName    string
	ProjectName     string
	ProjectLocation string

	LineItems []LineItem

	Subtotal   decimal.Decimal
	GrandTotal decimal.Decimal

	Invoice *InvoiceFields

	Notes          string
	SignatureImage []byte
	SignatureDate  string

	IssueDate time.Time
}

// ComputeTotals fills Subtotal and GrandTotal from the line items. The
// renderer calls this itself, so the printed totals always match the rows.
func (r *Request) ComputeTotals() {
	r.Subtotal = Subtotal(r.LineItems)
	r.GrandTotal = r.Subtotal
	if r.Kind == KindInvoice && r.Invoice != nil {
		r.GrandTotal = r.Subtotal.Sub(r.Invoice.Deposit)
		if r.GrandTotal.IsNegative() {
			r.GrandTotal = decimal.Zero
		}
	}
}

// Filename returns the attachment name for a rendered document.
func Filename(k Kind, ref string) string {
	return k.Heading() + "_" + ref + ".pdf"
}
