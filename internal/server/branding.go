package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	brandingdomain "github.com/smallbiznis/docbill/internal/branding/domain"
)

// @Summary      Get Branding
// @Description  Get the default branding profile
// @Tags         branding
// @Produce      json
// @Success      200  {object}  brandingdomain.Profile
// @Router       /branding [get]
func (s *Server) GetBranding(c *gin.Context) {
	resp, err := s.brandingSvc.Default(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Branding
// @Description  Update fields on the default branding profile
// @Tags         branding
// @Accept       json
// @Produce      json
// @Param        request body brandingdomain.UpdateProfileRequest true "Update Branding Request"
// @Success      200  {object}  brandingdomain.Profile
// @Router       /branding [put]
func (s *Server) UpdateBranding(c *gin.Context) {
	var req brandingdomain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.brandingSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
