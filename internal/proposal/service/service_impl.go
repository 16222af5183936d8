package service

import (
	"context"
	"errors"
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
	proposaldomain "github.com/smallbiznis/docbill/internal/proposal/domain"
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

	repo repository.Repository[proposaldomain.Proposal]
}

func NewService(p ServiceParam) proposaldomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("proposal.service"),
		genID:  p.GenID,
		outbox: p.Outbox,
		repo:   repository.ProvideStore[proposaldomain.Proposal](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req proposaldomain.CreateProposalRequest) (*proposaldomain.Proposal, error) {
	customerID, err := customerdomain.ParseID(req.CustomerID)
	if err != nil {
		return nil, err
	}

	items, err := document.EncodeItems(req.LineItems)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &proposaldomain.Proposal{
		ID:              s.genID.Generate(),
		CustomerID:      customerID,
		ProjectName:     req.ProjectName,
		ProjectLocation: req.ProjectLocation,
		Status:          proposaldomain.StatusOpen,
		LineItems:       datatypes.JSON(items),
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = sequence.Allocate(ctx, s.db, func(tx *gorm.DB, number int64) error {
		record.Number = number
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.EventProposalCreated,
			Payload: events.ProposalPayload{
				Ref:        record.Ref(),
				Number:     record.Number,
				CustomerID: record.CustomerID.String(),
				Status:     string(record.Status),
			}.ToMap(),
			DedupeKey: events.EventProposalCreated + ":" + record.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("proposal created",
		zap.String("ref", record.Ref()),
		zap.String("customer_id", record.CustomerID.String()),
	)
	return record, nil
}

var proposalSortColumns = map[string]bool{
	"number": true,
	"status": true,
}

func (s *Service) List(ctx context.Context, req proposaldomain.ListProposalRequest) (proposaldomain.ListProposalResponse, error) {
	var filter any
	if req.Status != "" {
		filter = map[string]any{"status": req.Status}
	}

	if req.SortBy != "" {
		records, err := s.repo.Find(ctx, filter,
			option.WithSortBy(option.QuerySortBy{Allow: proposalSortColumns, Field: req.SortBy, Desc: true}),
			option.WithLimit(req.Pagination.Limit()),
		)
		if err != nil {
			return proposaldomain.ListProposalResponse{}, err
		}
		return proposaldomain.ListProposalResponse{Proposals: records}, nil
	}

	records, err := s.repo.Find(ctx, filter, option.ApplyPagination(req.Pagination))
	if err != nil {
		return proposaldomain.ListProposalResponse{}, err
	}

	records, pageInfo := pagination.BuildCursorPageInfo(records, req.Pagination.Limit(), func(record *proposaldomain.Proposal) string {
		return record.ID.String()
	})
	return proposaldomain.ListProposalResponse{
		PageInfo:  pageInfo,
		Proposals: records,
	}, nil
}

func (s *Service) GetByRef(ctx context.Context, ref string) (*proposaldomain.Proposal, error) {
	number, err := document.ParseRef(ref)
	if err != nil {
		return nil, err
	}
	return s.findByNumber(ctx, s.db, number)
}

func (s *Service) Close(ctx context.Context, ref string) (*proposaldomain.Proposal, error) {
	number, err := document.ParseRef(ref)
	if err != nil {
		return nil, err
	}

	var record *proposaldomain.Proposal
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err = s.findByNumber(ctx, tx, number)
		if err != nil {
			return err
		}
		if record.Status != proposaldomain.StatusOpen {
			return proposaldomain.ErrProposalNotOpen
		}

		record.Status = proposaldomain.StatusClosed
		record.UpdatedAt = time.Now().UTC()
		if err := tx.Save(record).Error; err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.EventProposalClosed,
			Payload: events.ProposalPayload{
				Ref:        record.Ref(),
				Number:     record.Number,
				CustomerID: record.CustomerID.String(),
				Status:     string(record.Status),
			}.ToMap(),
			DedupeKey: events.EventProposalClosed + ":" + record.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) Convert(ctx context.Context, ref string) (*invoicedomain.Invoice, error) {
	number, err := document.ParseRef(ref)
	if err != nil {
		return nil, err
	}

	var shell *invoicedomain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.findByNumber(ctx, tx, number)
		if err != nil {
			return err
		}

		// A sibling invoice with the proposal's number means conversion
		// already happened, whatever the status column says.
		var existing int64
		if err := tx.Model(&invoicedomain.Invoice{}).
			Where("number = ?", record.Number).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 || record.Status == proposaldomain.StatusConverted {
			return proposaldomain.ErrAlreadyConverted
		}
		if record.Status != proposaldomain.StatusOpen {
			return proposaldomain.ErrProposalNotOpen
		}

		now := time.Now().UTC()
		shell = &invoicedomain.Invoice{
			ID:              s.genID.Generate(),
			Number:          record.Number,
			CustomerID:      record.CustomerID,
			ProjectName:     record.ProjectName,
			ProjectLocation: record.ProjectLocation,
			LineItems:       record.LineItems,
			Total:           decimal.Zero,
			Deposit:         decimal.Zero,
			Paid:            false,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.Create(shell).Error; err != nil {
			return err
		}

		record.Status = proposaldomain.StatusConverted
		record.UpdatedAt = now
		if err := tx.Save(record).Error; err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.EventProposalConverted,
			Payload: events.ProposalPayload{
				Ref:        record.Ref(),
				Number:     record.Number,
				CustomerID: record.CustomerID.String(),
				Status:     string(record.Status),
			}.ToMap(),
			DedupeKey: events.EventProposalConverted + ":" + record.ID.String(),
		})
	})
	if err != nil {
		// The unique index on invoices.number turns a convert race into
		// a duplicate-key failure; report it as the conversion conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, proposaldomain.ErrAlreadyConverted
		}
		return nil, err
	}

	s.log.Info("proposal converted",
		zap.String("ref", document.ProposalRef(shell.Number)),
		zap.String("invoice_ref", shell.Ref()),
	)
	return shell, nil
}

func (s *Service) findByNumber(ctx context.Context, db *gorm.DB, number int64) (*proposaldomain.Proposal, error) {
	var record proposaldomain.Proposal
	err := db.WithContext(ctx).
		Where("number = ?", number).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, proposaldomain.ErrProposalNotFound
		}
		return nil, err
	}
	return &record, nil
}
