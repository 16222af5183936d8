// Package seed bootstraps the default branding profile on startup.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	brandingdomain "github.com/smallbiznis/docbill/internal/branding/domain"
)

const (
	defaultCompanyName   = "J & I Heating and Cooling"
	defaultAddressLine1  = "2788 N. 48th Rd."
	defaultAddressLine2  = "Sandwich IL, 60548"
	defaultPhone         = "Phone (630) 849-0385"
	defaultLicensingLine = "Insured and Bonded"
	defaultTagline       = "Thank you for choosing J & I Heating and Cooling."
)

// EnsureDefaultProfile creates the default branding profile when the
// table is empty, so a fresh install can render documents immediately.
func EnsureDefaultProfile(db *gorm.DB, logoPath string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile brandingdomain.Profile
		err := tx.WithContext(ctx).Where("is_default = ?", true).First(&profile).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		profile = brandingdomain.Profile{
			ID:            node.Generate(),
			CompanyName:   defaultCompanyName,
			AddressLine1:  defaultAddressLine1,
			AddressLine2:  defaultAddressLine2,
			Phone:         defaultPhone,
			LicensingLine: defaultLicensingLine,
			Tagline:       defaultTagline,
			LogoPath:      logoPath,
			IsDefault:     true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return tx.WithContext(ctx).Create(&profile).Error
	})
}
