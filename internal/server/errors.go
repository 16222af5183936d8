package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	brandingdomain "github.com/smallbiznis/docbill/internal/branding/domain"
	customerdomain "github.com/smallbiznis/docbill/internal/customer/domain"
	"github.com/smallbiznis/docbill/internal/document"
	invoicedomain "github.com/smallbiznis/docbill/internal/invoice/domain"
	"github.com/smallbiznis/docbill/internal/mailer"
	proposaldomain "github.com/smallbiznis/docbill/internal/proposal/domain"
	reportdomain "github.com/smallbiznis/docbill/internal/report/domain"
)

var (
	ErrNotFound           = errors.New("not_found")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

// APIError is the JSON error envelope returned by every handler.
type APIError struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *APIError) Error() string { return e.Code }

func invalidRequestError() error {
	return &APIError{Code: "invalid_request", Message: "request body could not be parsed"}
}

func newValidationError(field, code, message string) error {
	return &APIError{Code: code, Field: field, Message: message}
}

// statusFor maps domain sentinel errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, customerdomain.ErrCustomerNotFound),
		errors.Is(err, proposaldomain.ErrProposalNotFound),
		errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, brandingdomain.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, proposaldomain.ErrAlreadyConverted),
		errors.Is(err, proposaldomain.ErrProposalNotOpen):
		return http.StatusConflict
	case errors.Is(err, document.ErrInvalidReference),
		errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, brandingdomain.ErrInvalidName),
		errors.Is(err, invoicedomain.ErrInvalidCost),
		errors.Is(err, reportdomain.ErrInvalidYear),
		errors.Is(err, mailer.ErrMissingRecipient):
		return http.StatusBadRequest
	case errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, mailer.ErrMailerUnconfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError writes the error envelope and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": apiErr})
		return
	}

	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal_error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": APIError{
		Code:    message,
		Message: message,
	}})
}
