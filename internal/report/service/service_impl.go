package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/docbill/internal/clock"
	"github.com/smallbiznis/docbill/internal/config"
	reportdomain "github.com/smallbiznis/docbill/internal/report/domain"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cfg   config.Config
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	loc   *time.Location
}

func NewService(p ServiceParam) reportdomain.Service {
	loc, err := time.LoadLocation(p.Cfg.Timezone)
	if err != nil {
		p.Log.Warn("invalid report timezone, falling back to UTC",
			zap.String("timezone", p.Cfg.Timezone),
			zap.Error(err),
		)
		loc = time.UTC
	}
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("report.service"),
		clock: p.Clock,
		loc:   loc,
	}
}

type profitRow struct {
	InvoiceCount int64
	PaidCount    int64
	TotalBilled  decimal.Decimal
	TotalCost    decimal.Decimal
}

func (s *Service) YearToDate(ctx context.Context, year int) (reportdomain.ProfitSummary, error) {
	now := s.clock.Now().In(s.loc)
	if year == 0 {
		year = now.Year()
	}
	if year < 2000 || year > now.Year() {
		return reportdomain.ProfitSummary{}, reportdomain.ErrInvalidYear
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, s.loc)

	var row profitRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS invoice_count,
			COALESCE(SUM(CASE WHEN paid THEN 1 ELSE 0 END), 0) AS paid_count,
			COALESCE(SUM(total), 0) AS total_billed,
			COALESCE(SUM(internal_cost), 0) AS total_cost
		FROM invoices
		WHERE created_at >= ? AND created_at < ?`,
		start.UTC(), end.UTC(),
	).Scan(&row).Error
	if err != nil {
		return reportdomain.ProfitSummary{}, err
	}

	return reportdomain.ProfitSummary{
		PeriodStart:  start,
		PeriodEnd:    end,
		InvoiceCount: row.InvoiceCount,
		PaidCount:    row.PaidCount,
		TotalBilled:  row.TotalBilled,
		TotalCost:    row.TotalCost,
		Profit:       row.TotalBilled.Sub(row.TotalCost),
	}, nil
}
