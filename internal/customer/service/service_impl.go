package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/docbill/internal/cache"
	customerdomain "github.com/smallbiznis/docbill/internal/customer/domain"
	"github.com/smallbiznis/docbill/pkg/db/option"
	"github.com/smallbiznis/docbill/pkg/db/pagination"
	"github.com/smallbiznis/docbill/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// customerCacheTTL bounds staleness of the hot GetByID path used while
// rendering and emailing documents.
const customerCacheTTL = 30 * time.Second

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node

	repo  repository.Repository[customerdomain.Customer]
	cache cache.Cache[snowflake.ID, customerdomain.Customer]
}

func NewService(p ServiceParam) customerdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[customerdomain.Customer](p.DB),
		cache: cache.NewTTLCache[snowflake.ID, customerdomain.Customer](),
	}
}

func (s *Service) Create(ctx context.Context, req customerdomain.CreateCustomerRequest) (*customerdomain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, customerdomain.ErrInvalidName
	}

	now := time.Now().UTC()
	record := &customerdomain.Customer{
		ID:           s.genID.Generate(),
		Name:         name,
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		CityStateZip: strings.TrimSpace(req.CityStateZip),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) Update(ctx context.Context, req customerdomain.UpdateCustomerRequest) (*customerdomain.Customer, error) {
	id, err := customerdomain.ParseID(req.ID)
	if err != nil {
		return nil, err
	}

	record, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, customerdomain.ErrInvalidName
		}
		record.Name = name
	}
	if req.Email != nil {
		record.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		record.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		record.Address = strings.TrimSpace(*req.Address)
	}
	if req.CityStateZip != nil {
		record.CityStateZip = strings.TrimSpace(*req.CityStateZip)
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.cache.Delete(id)
	return record, nil
}

func (s *Service) List(ctx context.Context, req customerdomain.ListCustomerRequest) (customerdomain.ListCustomerResponse, error) {
	var filter any
	if name := strings.TrimSpace(req.Name); name != "" {
		filter = map[string]any{"name": name}
	}

	records, err := s.repo.Find(ctx, filter, option.ApplyPagination(req.Pagination))
	if err != nil {
		return customerdomain.ListCustomerResponse{}, err
	}

	records, pageInfo := pagination.BuildCursorPageInfo(records, req.Pagination.Limit(), func(record *customerdomain.Customer) string {
		return record.ID.String()
	})
	return customerdomain.ListCustomerResponse{
		PageInfo:  pageInfo,
		Customers: records,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (*customerdomain.Customer, error) {
	id, err := customerdomain.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cache.Get(id); ok {
		return &cached, nil
	}

	record, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(id, *record, customerCacheTTL)
	return record, nil
}

func (s *Service) findByID(ctx context.Context, id snowflake.ID) (*customerdomain.Customer, error) {
	record, err := s.repo.FindOne(ctx, map[string]any{"id": id})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerdomain.ErrCustomerNotFound
		}
		return nil, err
	}
	return record, nil
}
