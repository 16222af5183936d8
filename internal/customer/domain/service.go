package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/docbill/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	CityStateZip string `json:"city_state_zip"`
}

type UpdateCustomerRequest struct {
	ID           string  `json:"id"`
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	CityStateZip *string `json:"city_state_zip"`
}

type ListCustomerRequest struct {
	pagination.Pagination
	Name string `form:"name"`
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	Update(ctx context.Context, req UpdateCustomerRequest) (*Customer, error)
	List(ctx context.Context, req ListCustomerRequest) (ListCustomerResponse, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
}

// ParseID parses a customer ID string.
func ParseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

var (
	ErrInvalidID        = errors.New("invalid_customer_id")
	ErrInvalidName      = errors.New("invalid_customer_name")
	ErrCustomerNotFound = errors.New("customer_not_found")
)
