package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"takeoffs/internal/domain"
)

// MockCatalogRepo is a mock implementation of port.CatalogRepository.
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) Upsert(ctx context.Context, row *domain.CatalogPrice) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockCatalogRepo) ListByTrade(ctx context.Context, trade domain.Trade) ([]domain.CatalogPrice, error) {
	args := m.Called(ctx, trade)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogPrice), args.Error(1)
}

func (m *MockCatalogRepo) ListAll(ctx context.Context) ([]domain.CatalogPrice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogPrice), args.Error(1)
}

func (m *MockCatalogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
