// Package repository persists branding profiles.
package repository

import (
	"context"
	"errors"

	brandingdomain "github.com/smallbiznis/docbill/internal/branding/domain"
	"gorm.io/gorm"
)

type repo struct{}

// Provide constructs the branding repository.
func Provide() brandingdomain.Repository {
	return repo{}
}

func (repo) FindDefault(ctx context.Context, db *gorm.DB) (*brandingdomain.Profile, error) {
	var profile brandingdomain.Profile
	err := db.WithContext(ctx).Where("is_default = ?", true).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, brandingdomain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (repo) Save(ctx context.Context, db *gorm.DB, profile *brandingdomain.Profile) error {
	return db.WithContext(ctx).Save(profile).Error
}
