package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"takeoffs/internal/domain"
)

// MockBlueprintRepo is a mock implementation of port.BlueprintRepository.
type MockBlueprintRepo struct {
	mock.Mock
}

func (m *MockBlueprintRepo) Create(ctx context.Context, bp *domain.Blueprint) error {
	args := m.Called(ctx, bp)
	return args.Error(0)
}

func (m *MockBlueprintRepo) GetByID(ctx context.Context, blueprintID uuid.UUID) (*domain.Blueprint, error) {
	args := m.Called(ctx, blueprintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blueprint), args.Error(1)
}

func (m *MockBlueprintRepo) ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Blueprint, int, error) {
	args := m.Called(ctx, projectID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Blueprint), args.Int(1), args.Error(2)
}

func (m *MockBlueprintRepo) UpdateStatus(ctx context.Context, blueprintID uuid.UUID, status domain.FileStatus) error {
	args := m.Called(ctx, blueprintID, status)
	return args.Error(0)
}

func (m *MockBlueprintRepo) Delete(ctx context.Context, blueprintID uuid.UUID) error {
	args := m.Called(ctx, blueprintID)
	return args.Error(0)
}
