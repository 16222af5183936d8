package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/smallbiznis/docbill/internal/document"
)

type Invoice struct {
	ID              snowflake.ID   `json:"id" gorm:"primaryKey"`
	Number          int64          `json:"number" gorm:"uniqueIndex:idx_invoices_number"`
	CustomerID      snowflake.ID   `json:"customer_id"`
	ProjectName     string         `json:"project_name"`
	ProjectLocation string         `json:"project_location"`
	LineItems       datatypes.JSON `json:"line_items"`

	Total       decimal.Decimal `json:"total" gorm:"type:numeric"`
	Deposit     decimal.Decimal `json:"deposit" gorm:"type:numeric"`
	CheckNumber string          `json:"check_number"`
	Paid        bool            `json:"paid"`

	// InternalCost is the contractor's private cost basis. It feeds the
	// profit report and is never serialized to clients or rendered.
	InternalCost decimal.Decimal `json:"-" gorm:"type:numeric"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}

func (inv *Invoice) Ref() string {
	return document.InvoiceRef(inv.Number)
}

func (inv *Invoice) Items() ([]document.LineItem, error) {
	return document.DecodeItems(inv.LineItems)
}

// RenderRequest maps the stored invoice onto the document contract. The
// internal cost field has no counterpart in the request, so it cannot
// leak into rendered output.
func (inv *Invoice) RenderRequest(customerName string) (document.Request, error) {
	items, err := inv.Items()
	if err != nil {
		return document.Request{}, err
	}
	return document.Request{
		Kind:            document.KindInvoice,
		ReferenceNumber: inv.Ref(),
		CustomerName:    customerName,
		ProjectName:     inv.ProjectName,
		ProjectLocation: inv.ProjectLocation,
		LineItems:       items,
		Invoice: &document.InvoiceFields{
			Deposit:       inv.Deposit,
			CheckNumber:   inv.CheckNumber,
			ShowPaidStamp: inv.Paid,
		},
		IssueDate: inv.CreatedAt,
	}, nil
}
