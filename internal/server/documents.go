package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smallbiznis/docbill/internal/document"
	"github.com/smallbiznis/docbill/internal/events"
	"github.com/smallbiznis/docbill/internal/mailer"
)

// renderDocument resolves a stored record into rendered PDF bytes plus
// the data the email path needs.
type renderedDocument struct {
	Kind          document.Kind
	Ref           string
	CustomerName  string
	CustomerEmail string
	PDF           []byte
}

func (s *Server) renderProposal(ctx context.Context, ref string) (*renderedDocument, error) {
	record, err := s.proposalSvc.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerSvc.GetByID(ctx, record.CustomerID.String())
	if err != nil {
		return nil, err
	}

	req, err := record.RenderRequest(customer.Name)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, req, customer.Name, customer.Email)
}

func (s *Server) renderInvoice(ctx context.Context, ref string) (*renderedDocument, error) {
	record, err := s.invoiceSvc.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerSvc.GetByID(ctx, record.CustomerID.String())
	if err != nil {
		return nil, err
	}

	req, err := record.RenderRequest(customer.Name)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, req, customer.Name, customer.Email)
}

func (s *Server) render(ctx context.Context, req document.Request, customerName, customerEmail string) (*renderedDocument, error) {
	branding, err := s.brandingSvc.RenderBranding(ctx)
	if err != nil {
		return nil, err
	}

	pdf, err := document.NewRenderer(branding).Render(req)
	if err != nil {
		return nil, err
	}
	return &renderedDocument{
		Kind:          req.Kind,
		Ref:           req.ReferenceNumber,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		PDF:           pdf,
	}, nil
}

func (s *Server) servePDF(c *gin.Context, doc *renderedDocument) {
	filename := document.Filename(doc.Kind, doc.Ref)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", doc.PDF)
}

type emailDocumentRequest struct {
	To string `json:"to"`
}

func (s *Server) emailDocument(c *gin.Context, doc *renderedDocument) {
	var req emailDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		AbortWithError(c, invalidRequestError())
		return
	}
	to := req.To
	if to == "" {
		to = doc.CustomerEmail
	}

	branding, err := s.brandingSvc.Default(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	sender := mailer.Sender{
		Name:        s.cfg.Owner.Name,
		Title:       s.cfg.Owner.Title,
		DirectPhone: s.cfg.Owner.DirectPhone,
		WebsiteURL:  s.cfg.Owner.WebsiteURL,
		CompanyName: branding.CompanyName,
	}
	msg := mailer.Message{
		To:            to,
		Subject:       mailer.Subject(doc.Kind, doc.Ref, branding.CompanyName),
		HTMLBody:      mailer.BuildBody(doc.CustomerName, doc.Kind, doc.Ref, s.clock.Now().In(s.loc), sender),
		AttachmentPDF: doc.PDF,
		Filename:      document.Filename(doc.Kind, doc.Ref),
	}
	if err := s.mailer.Send(c.Request.Context(), msg); err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.outbox.Publish(c.Request.Context(), events.Event{
		Type: events.EventDocumentEmailed,
		Payload: events.EmailPayload{
			Ref:       doc.Ref,
			Kind:      doc.Kind.String(),
			Recipient: to,
		}.ToMap(),
	}); err != nil {
		s.log.Warn("email event not recorded", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "sent", "to": to})
}

// @Summary      Proposal PDF
// @Description  Render the proposal as a PDF attachment
// @Tags         proposals
// @Produce      application/pdf
// @Param        ref  path  string  true  "Proposal reference"
// @Success      200  {file}  binary
// @Router       /proposals/{ref}/pdf [get]
func (s *Server) ProposalPDF(c *gin.Context) {
	doc, err := s.renderProposal(c.Request.Context(), c.Param("ref"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.servePDF(c, doc)
}

// @Summary      Email Proposal
// @Description  Render the proposal and email it to the customer
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        ref      path  string                true  "Proposal reference"
// @Param        request  body  emailDocumentRequest  false "Recipient override"
// @Success      200  {object}  map[string]string
// @Router       /proposals/{ref}/email [post]
func (s *Server) EmailProposal(c *gin.Context) {
	doc, err := s.renderProposal(c.Request.Context(), c.Param("ref"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.emailDocument(c, doc)
}

// @Summary      Invoice PDF
// @Description  Render the invoice as a PDF attachment
// @Tags         invoices
// @Produce      application/pdf
// @Param        ref  path  string  true  "Invoice reference"
// @Success      200  {file}  binary
// @Router       /invoices/{ref}/pdf [get]
func (s *Server) InvoicePDF(c *gin.Context) {
	doc, err := s.renderInvoice(c.Request.Context(), c.Param("ref"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.servePDF(c, doc)
}

// @Summary      Email Invoice
// @Description  Render the invoice and email it to the customer
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        ref      path  string                true  "Invoice reference"
// @Param        request  body  emailDocumentRequest  false "Recipient override"
// @Success      200  {object}  map[string]string
// @Router       /invoices/{ref}/email [post]
func (s *Server) EmailInvoice(c *gin.Context) {
	doc, err := s.renderInvoice(c.Request.Context(), c.Param("ref"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.emailDocument(c, doc)
}
