package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	"github.com/smallbiznis/docbill/internal/document"
)

type Status string

const (
	StatusOpen      Status = "open"
	StatusConverted Status = "converted"
	StatusClosed    Status = "closed"
)

type Proposal struct {
	ID              snowflake.ID   `json:"id" gorm:"primaryKey"`
	Number          int64          `json:"number" gorm:"uniqueIndex:idx_proposals_number"`
	CustomerID      snowflake.ID   `json:"customer_id"`
	ProjectName     string         `json:"project_name"`
	ProjectLocation string         `json:"project_location"`
	Status          Status         `json:"status" gorm:"index:idx_proposals_status"`
	LineItems       datatypes.JSON `json:"line_items"`
	Notes           string         `json:"notes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (Proposal) TableName() string {
	return "proposals"
}

func (p *Proposal) Ref() string {
	return document.ProposalRef(p.Number)
}

func (p *Proposal) Items() ([]document.LineItem, error) {
	return document.DecodeItems(p.LineItems)
}

// RenderRequest maps the stored proposal onto the document contract. The
// customer name is resolved by the caller since proposals store only the
// customer id.
func (p *Proposal) RenderRequest(customerName string) (document.Request, error) {
	items, err := p.Items()
	if err != nil {
		return document.Request{}, err
	}
	return document.Request{
		Kind:            document.KindProposal,
		ReferenceNumber: p.Ref(),
		CustomerName:    customerName,
		ProjectName:     p.ProjectName,
		ProjectLocation: p.ProjectLocation,
		LineItems:       items,
		Notes:           p.Notes,
		IssueDate:       p.CreatedAt,
	}, nil
}
