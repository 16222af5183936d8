package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindDefault(ctx context.Context, db *gorm.DB) (*Profile, error)
	Save(ctx context.Context, db *gorm.DB, profile *Profile) error
}
