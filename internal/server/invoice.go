package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	invoicedomain "github.com/smallbiznis/docbill/internal/invoice/domain"
	"github.com/smallbiznis/docbill/pkg/db/pagination"
)

// @Summary      Save Invoice
// @Description  Upsert an invoice keyed by the numeric part of the reference
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        ref      path  string                            true  "Invoice reference"
// @Param        request  body  invoicedomain.SaveInvoiceRequest  true  "Save Invoice Request"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{ref} [put]
func (s *Server) SaveInvoice(c *gin.Context) {
	var req invoicedomain.SaveInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Reference = c.Param("ref")

	resp, err := s.invoiceSvc.Save(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Invoices
// @Description  List invoices, optionally filtered by paid flag
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        paid        query  bool    false  "Paid"
// @Param        sort_by     query  string  false  "Sort Column (number, total)"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  invoicedomain.ListInvoiceResponse
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Paid   *bool  `form:"paid"`
		SortBy string `form:"sort_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		Pagination: query.Pagination,
		Paid:       query.Paid,
		SortBy:     query.SortBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Invoice
// @Description  Get invoice by reference, e.g. INV-0007
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        ref  path      string  true  "Invoice reference"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{ref} [get]
func (s *Server) GetInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByRef(c.Request.Context(), c.Param("ref"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Toggle Invoice Paid
// @Description  Flip the paid flag and return the updated invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        ref  path      string  true  "Invoice reference"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{ref}/paid [post]
func (s *Server) ToggleInvoicePaid(c *gin.Context) {
	resp, err := s.invoiceSvc.TogglePaid(c.Request.Context(), c.Param("ref"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp, "paid": resp.Paid})
}

type setInternalCostRequest struct {
	Cost decimal.Decimal `json:"cost"`
}

// @Summary      Set Invoice Internal Cost
// @Description  Record the private cost basis used by the profit report
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        ref      path  string                  true  "Invoice reference"
// @Param        request  body  setInternalCostRequest  true  "Internal Cost Request"
// @Success      200  {object}  map[string]string
// @Router       /invoices/{ref}/internal-cost [put]
func (s *Server) SetInvoiceInternalCost(c *gin.Context) {
	var req setInternalCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.invoiceSvc.SetInternalCost(c.Request.Context(), c.Param("ref"), req.Cost); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
