// Package events records document lifecycle events in a transactional outbox.
package events

// Lifecycle event types written to the document_events table.
const (
	EventProposalCreated   = "proposal.created"
	EventProposalConverted = "proposal.converted"
	EventProposalClosed    = "proposal.closed"
	EventInvoiceSaved      = "invoice.saved"
	EventInvoicePaidToggle = "invoice.paid_toggled"
	EventDocumentEmailed   = "document.emailed"
)

// ProposalPayload captures the minimal data for proposal events.
type ProposalPayload struct {
	Ref        string `json:"ref"`
	Number     int64  `json:"number"`
	CustomerID string `json:"customer_id"`
	Status     string `json:"status"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p ProposalPayload) ToMap() map[string]any {
	return map[string]any{
		"ref":         p.Ref,
		"number":      p.Number,
		"customer_id": p.CustomerID,
		"status":      p.Status,
	}
}

// InvoicePayload captures the minimal data for invoice events.
type InvoicePayload struct {
	Ref    string `json:"ref"`
	Number int64  `json:"number"`
	Paid   bool   `json:"paid"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p InvoicePayload) ToMap() map[string]any {
	return map[string]any{
		"ref":    p.Ref,
		"number": p.Number,
		"paid":   p.Paid,
	}
}

// EmailPayload records an outbound document email.
type EmailPayload struct {
	Ref       string `json:"ref"`
	Kind      string `json:"kind"`
	Recipient string `json:"recipient"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p EmailPayload) ToMap() map[string]any {
	return map[string]any{
		"ref":       p.Ref,
		"kind":      p.Kind,
		"recipient": p.Recipient,
	}
}
