// Package repository provides a small generic persistence layer over gorm.
package repository

import (
	"context"

	"github.com/smallbiznis/docbill/pkg/db/option"
	"gorm.io/gorm"
)

// Repository exposes the common persistence operations for a model type.
type Repository[T any] interface {
	Create(ctx context.Context, record *T) error
	Save(ctx context.Context, record *T) error
	Find(ctx context.Context, filter any, opts ...option.Option) ([]T, error)
	FindOne(ctx context.Context, filter any, opts ...option.Option) (*T, error)
	Count(ctx context.Context, filter any) (int64, error)
}

type store[T any] struct {
	db *gorm.DB
}

// ProvideStore constructs a Repository bound to the given connection.
func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (s *store[T]) Create(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *store[T]) Save(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Save(record).Error
}

func (s *store[T]) Find(ctx context.Context, filter any, opts ...option.Option) ([]T, error) {
	tx := s.db.WithContext(ctx).Model(new(T))
	if filter != nil {
		tx = tx.Where(filter)
	}
	for _, opt := range opts {
		tx = opt(tx)
	}
	var records []T
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *store[T]) FindOne(ctx context.Context, filter any, opts ...option.Option) (*T, error) {
	tx := s.db.WithContext(ctx).Model(new(T))
	if filter != nil {
		tx = tx.Where(filter)
	}
	for _, opt := range opts {
		tx = opt(tx)
	}
	var record T
	if err := tx.First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *store[T]) Count(ctx context.Context, filter any) (int64, error) {
	tx := s.db.WithContext(ctx).Model(new(T))
	if filter != nil {
		tx = tx.Where(filter)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
