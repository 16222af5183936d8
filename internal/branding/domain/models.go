// Package domain defines the company branding profile used on documents.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Profile holds the header/footer content and logo printed on every page
// of a rendered document.
type Profile struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyName   string       `gorm:"type:text;not null" json:"company_name"`
	AddressLine1  string       `gorm:"type:text" json:"address_line1"`
	AddressLine2  string       `gorm:"type:text" json:"address_line2"`
	Phone         string       `gorm:"type:text" json:"phone"`
	LicensingLine string       `gorm:"type:text" json:"licensing_line"`
	Tagline       string       `gorm:"type:text" json:"tagline"`
	LogoPath      string       `gorm:"type:text" json:"logo_path"`
	IsDefault     bool         `gorm:"not null;default:false" json:"is_default"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "branding_profiles" }
