// Package domain contains the customer entity and service contract.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Customer is a billing contact for proposals and invoices.
type Customer struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"type:text;not null" json:"name"`
	Email        string       `gorm:"type:text" json:"email"`
	Phone        string       `gorm:"type:text" json:"phone"`
	Address      string       `gorm:"type:text" json:"address"`
	CityStateZip string       `gorm:"type:text" json:"city_state_zip"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
