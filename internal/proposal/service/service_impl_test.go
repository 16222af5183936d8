package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smallbiznis/docbill/internal/document"
	"github.com/smallbiznis/docbill/internal/events"
	invoicedomain "github.com/smallbiznis/docbill/internal/invoice/domain"
	proposaldomain "github.com/smallbiznis/docbill/internal/proposal/domain"
)

func setupProposalService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()
	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&proposaldomain.Proposal{}, &invoicedomain.Invoice{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(`CREATE TABLE document_events (
		id BIGINT PRIMARY KEY,
		event_type TEXT NOT NULL,
		payload TEXT,
		dedupe_key TEXT UNIQUE,
		published BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL
	)`).Error; err != nil {
		t.Fatalf("create events table: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	svc := NewService(ServiceParam{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Outbox: events.NewOutbox(db, node),
	}).(*Service)
	return svc, db, node
}

func testItems() []document.LineItem {
	return []document.LineItem{
		{Description: "Furnace filter", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromFloat(25)},
		{Description: "Labor", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromFloat(150)},
	}
}

func createOpenProposal(t *testing.T, svc *Service, node *snowflake.Node) *proposaldomain.Proposal {
	t.Helper()
	record, err := svc.Create(context.Background(), proposaldomain.CreateProposalRequest{
		CustomerID:      node.Generate().String(),
		ProjectName:     "Furnace replacement",
		ProjectLocation: "123 Main St",
		LineItems:       testItems(),
		Notes:           "2 year warranty on parts",
	})
	if err != nil {
		t.Fatalf("create proposal: %v", err)
	}
	return record
}

func TestCreateAssignsSequenceAndOpens(t *testing.T) {
	svc, _, node := setupProposalService(t)

	first := createOpenProposal(t, svc, node)
	if first.Number != 1 {
		t.Fatalf("expected number 1, got %d", first.Number)
	}
	if first.Status != proposaldomain.StatusOpen {
		t.Fatalf("expected open status, got %s", first.Status)
	}
	if first.Ref() != "P-0001" {
		t.Fatalf("unexpected ref %q", first.Ref())
	}

	second := createOpenProposal(t, svc, node)
	if second.Number != 2 {
		t.Fatalf("expected number 2, got %d", second.Number)
	}
}

func TestCreateWritesOutboxEvent(t *testing.T) {
	svc, db, node := setupProposalService(t)
	createOpenProposal(t, svc, node)

	var count int64
	if err := db.Raw(`SELECT COUNT(*) FROM document_events WHERE event_type = ?`, events.EventProposalCreated).Scan(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 created event, got %d", count)
	}
}

func TestGetByRefRoundTrip(t *testing.T) {
	svc, _, node := setupProposalService(t)
	created := createOpenProposal(t, svc, node)

	got, err := svc.GetByRef(context.Background(), created.Ref())
	if err != nil {
		t.Fatalf("get by ref: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected id %s, got %s", created.ID, got.ID)
	}

	items, err := got.Items()
	if err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 2 || items[0].Description != "Furnace filter" {
		t.Fatalf("unexpected items: %+v", items)
	}

	if _, err := svc.GetByRef(context.Background(), "P-0099"); !errors.Is(err, proposaldomain.ErrProposalNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.GetByRef(context.Background(), "garbage"); !errors.Is(err, document.ErrInvalidReference) {
		t.Fatalf("expected invalid reference, got %v", err)
	}
}

func TestConvertCreatesDraftShell(t *testing.T) {
	svc, _, node := setupProposalService(t)
	created := createOpenProposal(t, svc, node)

	shell, err := svc.Convert(context.Background(), created.Ref())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if shell.Number != created.Number {
		t.Fatalf("shell must carry the proposal number, got %d", shell.Number)
	}
	if !shell.Total.IsZero() || !shell.Deposit.IsZero() || shell.Paid {
		t.Fatalf("shell must be a zeroed draft: total=%s deposit=%s paid=%v", shell.Total, shell.Deposit, shell.Paid)
	}
	if shell.CustomerID != created.CustomerID {
		t.Fatal("shell must carry the proposal customer")
	}
	items, err := shell.Items()
	if err != nil || len(items) != 2 {
		t.Fatalf("shell must carry the line items: %v %+v", err, items)
	}

	updated, err := svc.GetByRef(context.Background(), created.Ref())
	if err != nil {
		t.Fatalf("reload proposal: %v", err)
	}
	if updated.Status != proposaldomain.StatusConverted {
		t.Fatalf("expected converted status, got %s", updated.Status)
	}
}

func TestConvertTwiceIsRejected(t *testing.T) {
	svc, db, node := setupProposalService(t)
	created := createOpenProposal(t, svc, node)

	if _, err := svc.Convert(context.Background(), created.Ref()); err != nil {
		t.Fatalf("first convert: %v", err)
	}
	if _, err := svc.Convert(context.Background(), created.Ref()); !errors.Is(err, proposaldomain.ErrAlreadyConverted) {
		t.Fatalf("expected already converted, got %v", err)
	}

	var count int64
	if err := db.Raw(`SELECT COUNT(*) FROM invoices WHERE number = ?`, created.Number).Scan(&count).Error; err != nil {
		t.Fatalf("count invoices: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one invoice for number %d, got %d", created.Number, count)
	}
}

func TestConvertClosedProposalIsRejected(t *testing.T) {
	svc, _, node := setupProposalService(t)
	created := createOpenProposal(t, svc, node)

	if _, err := svc.Close(context.Background(), created.Ref()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := svc.Convert(context.Background(), created.Ref()); !errors.Is(err, proposaldomain.ErrProposalNotOpen) {
		t.Fatalf("expected not open, got %v", err)
	}
}

func TestCloseIsTerminal(t *testing.T) {
	svc, _, node := setupProposalService(t)
	created := createOpenProposal(t, svc, node)

	closed, err := svc.Close(context.Background(), created.Ref())
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != proposaldomain.StatusClosed {
		t.Fatalf("expected closed, got %s", closed.Status)
	}

	if _, err := svc.Close(context.Background(), created.Ref()); !errors.Is(err, proposaldomain.ErrProposalNotOpen) {
		t.Fatalf("second close must fail, got %v", err)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	svc, _, node := setupProposalService(t)
	first := createOpenProposal(t, svc, node)
	createOpenProposal(t, svc, node)

	if _, err := svc.Close(context.Background(), first.Ref()); err != nil {
		t.Fatalf("close: %v", err)
	}

	resp, err := svc.List(context.Background(), proposaldomain.ListProposalRequest{Status: proposaldomain.StatusOpen})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Proposals) != 1 {
		t.Fatalf("expected 1 open proposal, got %d", len(resp.Proposals))
	}
	if resp.Proposals[0].Status != proposaldomain.StatusOpen {
		t.Fatalf("unexpected status %s", resp.Proposals[0].Status)
	}
}

func TestListSortedViewOrdersByNumber(t *testing.T) {
	svc, _, node := setupProposalService(t)
	createOpenProposal(t, svc, node)
	createOpenProposal(t, svc, node)
	createOpenProposal(t, svc, node)

	resp, err := svc.List(context.Background(), proposaldomain.ListProposalRequest{SortBy: "number"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Proposals) != 3 {
		t.Fatalf("expected 3 proposals, got %d", len(resp.Proposals))
	}
	for i, want := range []int64{3, 2, 1} {
		if resp.Proposals[i].Number != want {
			t.Fatalf("position %d: number = %d, want %d", i, resp.Proposals[i].Number, want)
		}
	}
	if resp.HasMore || resp.NextPageToken != "" {
		t.Fatal("sorted views must not page")
	}
}
