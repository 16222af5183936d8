package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	proposaldomain "github.com/smallbiznis/docbill/internal/proposal/domain"
	"github.com/smallbiznis/docbill/pkg/db/pagination"
)

// @Summary      Create Proposal
// @Description  Create a proposal with the next sequence number
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        request body proposaldomain.CreateProposalRequest true "Create Proposal Request"
// @Success      200  {object}  proposaldomain.Proposal
// @Router       /proposals [post]
func (s *Server) CreateProposal(c *gin.Context) {
	var req proposaldomain.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.proposalSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Proposals
// @Description  List proposals, optionally filtered by status
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        status      query  string  false  "Status (open, converted, closed)"
// @Param        sort_by     query  string  false  "Sort Column (number, status)"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  proposaldomain.ListProposalResponse
// @Router       /proposals [get]
func (s *Server) ListProposals(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status string `form:"status"`
		SortBy string `form:"sort_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	switch proposaldomain.Status(query.Status) {
	case "", proposaldomain.StatusOpen, proposaldomain.StatusConverted, proposaldomain.StatusClosed:
	default:
		AbortWithError(c, newValidationError("status", "invalid_status", "unknown proposal status"))
		return
	}

	resp, err := s.proposalSvc.List(c.Request.Context(), proposaldomain.ListProposalRequest{
		Pagination: query.Pagination,
		Status:     proposaldomain.Status(query.Status),
		SortBy:     query.SortBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Proposal
// @Description  Get proposal by reference, e.g. P-0007
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        ref  path      string  true  "Proposal reference"
// @Success      200  {object}  proposaldomain.Proposal
// @Router       /proposals/{ref} [get]
func (s *Server) GetProposal(c *gin.Context) {
	resp, err := s.proposalSvc.GetByRef(c.Request.Context(), c.Param("ref"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Close Proposal
// @Description  Close an open proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        ref  path      string  true  "Proposal reference"
// @Success      200  {object}  proposaldomain.Proposal
// @Router       /proposals/{ref}/close [post]
func (s *Server) CloseProposal(c *gin.Context) {
	resp, err := s.proposalSvc.Close(c.Request.Context(), c.Param("ref"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Convert Proposal
// @Description  Convert an open proposal into a draft invoice shell
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        ref  path      string  true  "Proposal reference"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /proposals/{ref}/convert [post]
func (s *Server) ConvertProposal(c *gin.Context) {
	resp, err := s.proposalSvc.Convert(c.Request.Context(), c.Param("ref"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
