package service

import (
	"context"
	"os"
	"strings"
	"time"

	brandingdomain "github.com/smallbiznis/docbill/internal/branding/domain"
	"github.com/smallbiznis/docbill/internal/document"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo brandingdomain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo brandingdomain.Repository
}

func NewService(p ServiceParam) brandingdomain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("branding.service"),
		repo: p.Repo,
	}
}

func (s *Service) Default(ctx context.Context) (*brandingdomain.Profile, error) {
	return s.repo.FindDefault(ctx, s.db)
}

func (s *Service) Update(ctx context.Context, req brandingdomain.UpdateProfileRequest) (*brandingdomain.Profile, error) {
	profile, err := s.repo.FindDefault(ctx, s.db)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		name := strings.TrimSpace(*req.CompanyName)
		if name == "" {
			return nil, brandingdomain.ErrInvalidName
		}
		profile.CompanyName = name
	}
	if req.AddressLine1 != nil {
		profile.AddressLine1 = strings.TrimSpace(*req.AddressLine1)
	}
	if req.AddressLine2 != nil {
		profile.AddressLine2 = strings.TrimSpace(*req.AddressLine2)
	}
	if req.Phone != nil {
		profile.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.LicensingLine != nil {
		profile.LicensingLine = strings.TrimSpace(*req.LicensingLine)
	}
	if req.Tagline != nil {
		profile.Tagline = strings.TrimSpace(*req.Tagline)
	}
	if req.LogoPath != nil {
		profile.LogoPath = strings.TrimSpace(*req.LogoPath)
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, s.db, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) RenderBranding(ctx context.Context) (document.Branding, error) {
	profile, err := s.repo.FindDefault(ctx, s.db)
	if err != nil {
		return document.Branding{}, err
	}

	branding := document.Branding{
		CompanyName:   profile.CompanyName,
		AddressLine1:  profile.AddressLine1,
		AddressLine2:  profile.AddressLine2,
		Phone:         profile.Phone,
		LicensingLine: profile.LicensingLine,
		Tagline:       profile.Tagline,
	}
	if profile.LogoPath != "" {
		logo, err := os.ReadFile(profile.LogoPath)
		if err != nil {
			s.log.Debug("logo not available, rendering without it",
				zap.String("path", profile.LogoPath), zap.Error(err))
		} else {
			branding.Logo = logo
		}
	}
	return branding, nil
}
