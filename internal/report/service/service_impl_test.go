package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smallbiznis/docbill/internal/clock"
	"github.com/smallbiznis/docbill/internal/config"
	invoicedomain "github.com/smallbiznis/docbill/internal/invoice/domain"
	reportdomain "github.com/smallbiznis/docbill/internal/report/domain"
)

func setupReportService(t *testing.T, now time.Time) (*Service, *gorm.DB) {
	t.Helper()
	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&invoicedomain.Invoice{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		Cfg:   config.Config{Timezone: "America/Chicago"},
		Clock: clock.Fixed(now),
	}).(*Service)
	return svc, db
}

func insertReportInvoice(t *testing.T, db *gorm.DB, node *snowflake.Node, number int64, total, cost float64, paid bool, createdAt time.Time) {
	t.Helper()
	record := invoicedomain.Invoice{
		ID:           node.Generate(),
		Number:       number,
		CustomerID:   node.Generate(),
		LineItems:    datatypes.JSON("[]"),
		Total:        decimal.NewFromFloat(total),
		Deposit:      decimal.Zero,
		Paid:         paid,
		InternalCost: decimal.NewFromFloat(cost),
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("insert invoice: %v", err)
	}
}

func TestYearToDateSumsCurrentYearOnly(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc, db := setupReportService(t, now)
	node, err := snowflake.NewNode(3)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	insertReportInvoice(t, db, node, 1, 1500, 600, true, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC))
	insertReportInvoice(t, db, node, 2, 800, 300, false, time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC))
	// prior year, excluded
	insertReportInvoice(t, db, node, 3, 9999, 9000, true, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC))

	summary, err := svc.YearToDate(context.Background(), 0)
	if err != nil {
		t.Fatalf("year to date: %v", err)
	}
	if summary.InvoiceCount != 2 {
		t.Fatalf("expected 2 invoices, got %d", summary.InvoiceCount)
	}
	if summary.PaidCount != 1 {
		t.Fatalf("expected 1 paid invoice, got %d", summary.PaidCount)
	}
	if !summary.TotalBilled.Equal(decimal.NewFromInt(2300)) {
		t.Fatalf("unexpected total billed %s", summary.TotalBilled)
	}
	if !summary.TotalCost.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("unexpected total cost %s", summary.TotalCost)
	}
	if !summary.Profit.Equal(decimal.NewFromInt(1400)) {
		t.Fatalf("unexpected profit %s", summary.Profit)
	}
}

func TestYearToDateEmptyYear(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := setupReportService(t, now)

	summary, err := svc.YearToDate(context.Background(), 2024)
	if err != nil {
		t.Fatalf("year to date: %v", err)
	}
	if summary.InvoiceCount != 0 || !summary.Profit.IsZero() {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

func TestYearToDateRejectsFutureYear(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := setupReportService(t, now)

	if _, err := svc.YearToDate(context.Background(), 2027); !errors.Is(err, reportdomain.ErrInvalidYear) {
		t.Fatalf("expected invalid year, got %v", err)
	}
}
