package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	customerdomain "github.com/smallbiznis/docbill/internal/customer/domain"
	"github.com/smallbiznis/docbill/internal/document"
	"github.com/smallbiznis/docbill/internal/events"
	invoicedomain "github.com/smallbiznis/docbill/internal/invoice/domain"
	"github.com/smallbiznis/docbill/internal/sequence"
	"github.com/smallbiznis/docbill/pkg/db/option"
	"github.com/smallbiznis/docbill/pkg/db/pagination"
	"github.com/smallbiznis/docbill/pkg/repository"
)

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Outbox *events.Outbox
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	outbox *events.Outbox

	repo repository.Repository[invoicedomain.Invoice]
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("invoice.service"),
		genID:  p.GenID,
		outbox: p.Outbox,
		repo:   repository.ProvideStore[invoicedomain.Invoice](p.DB),
	}
}

// Save upserts by the numeric part of the reference. An empty reference
// allocates the next sequence number and inserts.
func (s *Service) Save(ctx context.Context, req invoicedomain.SaveInvoiceRequest) (*invoicedomain.Invoice, error) {
	customerID, err := customerdomain.ParseID(req.CustomerID)
	if err != nil {
		return nil, err
	}

	items, err := document.EncodeItems(req.LineItems)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Reference) == "" {
		return s.insertFresh(ctx, req, customerID, items)
	}

	number, err := document.ParseRef(req.Reference)
	if err != nil {
		return nil, err
	}

	var record *invoicedomain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err = s.findByNumber(ctx, tx, number)
		if err != nil && !errors.Is(err, invoicedomain.ErrInvoiceNotFound) {
			return err
		}

		now := time.Now().UTC()
		inserting := record == nil
		if inserting {
			record = &invoicedomain.Invoice{
				ID:        s.genID.Generate(),
				Number:    number,
				Paid:      false,
				CreatedAt: now,
			}
		}
		record.CustomerID = customerID
		record.ProjectName = req.ProjectName
		record.ProjectLocation = req.ProjectLocation
		record.LineItems = datatypes.JSON(items)
		record.Total = req.Total
		record.Deposit = req.Deposit
		record.CheckNumber = strings.TrimSpace(req.CheckNumber)
		record.UpdatedAt = now

		if inserting {
			err = tx.Create(record).Error
		} else {
			err = tx.Save(record).Error
		}
		if err != nil {
			return err
		}
		return s.publishSaved(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) insertFresh(ctx context.Context, req invoicedomain.SaveInvoiceRequest, customerID snowflake.ID, items []byte) (*invoicedomain.Invoice, error) {
	now := time.Now().UTC()
	record := &invoicedomain.Invoice{
		ID:              s.genID.Generate(),
		CustomerID:      customerID,
		ProjectName:     req.ProjectName,
		ProjectLocation: req.ProjectLocation,
		LineItems:       datatypes.JSON(items),
		Total:           req.Total,
		Deposit:         req.Deposit,
		CheckNumber:     strings.TrimSpace(req.CheckNumber),
		Paid:            false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := sequence.Allocate(ctx, s.db, func(tx *gorm.DB, number int64) error {
		record.Number = number
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		return s.publishSaved(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

var invoiceSortColumns = map[string]bool{
	"number": true,
	"total":  true,
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	var filter any
	if req.Paid != nil {
		filter = map[string]any{"paid": *req.Paid}
	}

	if req.SortBy != "" {
		records, err := s.repo.Find(ctx, filter,
			option.WithSortBy(option.QuerySortBy{Allow: invoiceSortColumns, Field: req.SortBy, Desc: true}),
			option.WithLimit(req.Pagination.Limit()),
		)
		if err != nil {
			return invoicedomain.ListInvoiceResponse{}, err
		}
		return invoicedomain.ListInvoiceResponse{Invoices: records}, nil
	}

	records, err := s.repo.Find(ctx, filter, option.ApplyPagination(req.Pagination))
	if err != nil {
		return invoicedomain.ListInvoiceResponse{}, err
	}

	records, pageInfo := pagination.BuildCursorPageInfo(records, req.Pagination.Limit(), func(record *invoicedomain.Invoice) string {
		return record.ID.String()
	})
	return invoicedomain.ListInvoiceResponse{
		PageInfo: pageInfo,
		Invoices: records,
	}, nil
}

func (s *Service) GetByRef(ctx context.Context, ref string) (*invoicedomain.Invoice, error) {
	number, err := document.ParseRef(ref)
	if err != nil {
		return nil, err
	}
	return s.findByNumber(ctx, s.db, number)
}

func (s *Service) TogglePaid(ctx context.Context, ref string) (*invoicedomain.Invoice, error) {
	number, err := document.ParseRef(ref)
	if err != nil {
		return nil, err
	}

	var record *invoicedomain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err = s.findByNumber(ctx, tx, number)
		if err != nil {
			return err
		}

		record.Paid = !record.Paid
		record.UpdatedAt = time.Now().UTC()
		if err := tx.Save(record).Error; err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.EventInvoicePaidToggle,
			Payload: events.InvoicePayload{
				Ref:    record.Ref(),
				Number: record.Number,
				Paid:   record.Paid,
			}.ToMap(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice paid flag toggled",
		zap.String("ref", record.Ref()),
		zap.Bool("paid", record.Paid),
	)
	return record, nil
}

func (s *Service) SetInternalCost(ctx context.Context, ref string, cost decimal.Decimal) error {
	if cost.IsNegative() {
		return invoicedomain.ErrInvalidCost
	}
	number, err := document.ParseRef(ref)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.findByNumber(ctx, tx, number)
		if err != nil {
			return err
		}
		record.InternalCost = cost
		record.UpdatedAt = time.Now().UTC()
		return tx.Save(record).Error
	})
}

func (s *Service) publishSaved(ctx context.Context, tx *gorm.DB, record *invoicedomain.Invoice) error {
	return s.outbox.PublishTx(ctx, tx, events.Event{
		Type: events.EventInvoiceSaved,
		Payload: events.InvoicePayload{
			Ref:    record.Ref(),
			Number: record.Number,
			Paid:   record.Paid,
		}.ToMap(),
	})
}

func (s *Service) findByNumber(ctx context.Context, db *gorm.DB, number int64) (*invoicedomain.Invoice, error) {
	var record invoicedomain.Invoice
	err := db.WithContext(ctx).
		Where("number = ?", number).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoicedomain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &record, nil
}
