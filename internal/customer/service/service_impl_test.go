package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	customerdomain "github.com/smallbiznis/docbill/internal/customer/domain"
)

func setupCustomerService(t *testing.T) (*Service, *snowflake.Node) {
	t.Helper()
	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&customerdomain.Customer{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(5)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	svc := NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node}).(*Service)
	return svc, node
}

func TestCustomerCreateRequiresName(t *testing.T) {
	svc, _ := setupCustomerService(t)

	if _, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{Name: "   "}); !errors.Is(err, customerdomain.ErrInvalidName) {
		t.Fatalf("expected invalid name, got %v", err)
	}
}

func TestCustomerCreateAndGet(t *testing.T) {
	svc, _ := setupCustomerService(t)

	created, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{
		Name:  "Jane Homeowner",
		Email: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Jane Homeowner" || got.Email != "jane@example.com" {
		t.Fatalf("unexpected customer %+v", got)
	}

	if _, err := svc.GetByID(context.Background(), "not-a-number"); !errors.Is(err, customerdomain.ErrInvalidID) {
		t.Fatalf("expected invalid id, got %v", err)
	}
}

func TestCustomerUpdateInvalidatesCache(t *testing.T) {
	svc, _ := setupCustomerService(t)

	created, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{Name: "Jane Homeowner"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Warm the cache.
	if _, err := svc.GetByID(context.Background(), created.ID.String()); err != nil {
		t.Fatalf("get: %v", err)
	}

	newName := "Jane H. Homeowner"
	if _, err := svc.Update(context.Background(), customerdomain.UpdateCustomerRequest{
		ID:   created.ID.String(),
		Name: &newName,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID.String())
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Name != newName {
		t.Fatalf("stale read %q, want %q", got.Name, newName)
	}
}

func TestCustomerListPaginates(t *testing.T) {
	svc, _ := setupCustomerService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, customerdomain.CreateCustomerRequest{Name: "Customer"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	var req customerdomain.ListCustomerRequest
	req.PageSize = 2
	page, err := svc.List(ctx, req)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Customers) != 2 || !page.HasMore {
		t.Fatalf("unexpected first page: %d items, has_more=%v", len(page.Customers), page.HasMore)
	}

	req.PageToken = page.NextPageToken
	page, err = svc.List(ctx, req)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(page.Customers) != 1 || page.HasMore {
		t.Fatalf("unexpected second page: %d items, has_more=%v", len(page.Customers), page.HasMore)
	}
}
