package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/docbill/internal/document"
)

type UpdateProfileRequest struct {
	CompanyName   *string `json:"company_name"`
	AddressLine1  *string `json:"address_line1"`
	AddressLine2  *string `json:"address_line2"`
	Phone         *string `json:"phone"`
	LicensingLine *string `json:"licensing_line"`
	Tagline       *string `json:"tagline"`
	LogoPath      *string `json:"logo_path"`
}

type Service interface {
	Default(ctx context.Context) (*Profile, error)
	Update(ctx context.Context, req UpdateProfileRequest) (*Profile, error)
	// RenderBranding resolves the default profile into renderer input,
	// loading the logo file if one is configured. A missing or unreadable
	// logo is not an error.
	RenderBranding(ctx context.Context) (document.Branding, error)
}

var (
	ErrProfileNotFound = errors.New("branding_profile_not_found")
	ErrInvalidName     = errors.New("invalid_company_name")
)
