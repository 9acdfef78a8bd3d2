package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"takeoffs/internal/domain"
)

// MockAnalysisRepo is a mock implementation of port.AnalysisRepository.
type MockAnalysisRepo struct {
	mock.Mock
}

func (m *MockAnalysisRepo) Create(ctx context.Context, a *domain.Analysis) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAnalysisRepo) GetByID(ctx context.Context, analysisID uuid.UUID) (*domain.Analysis, error) {
	args := m.Called(ctx, analysisID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *MockAnalysisRepo) ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Analysis, int, error) {
	args := m.Called(ctx, projectID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Analysis), args.Int(1), args.Error(2)
}

func (m *MockAnalysisRepo) ListByBlueprint(ctx context.Context, blueprintID uuid.UUID) ([]domain.Analysis, error) {
	args := m.Called(ctx, blueprintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Analysis), args.Error(1)
}

func (m *MockAnalysisRepo) ClaimQueued(ctx context.Context, limit, maxAttempts int) ([]domain.Analysis, error) {
	args := m.Called(ctx, limit, maxAttempts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Analysis), args.Error(1)
}

func (m *MockAnalysisRepo) MarkCompleted(ctx context.Context, a *domain.Analysis) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAnalysisRepo) MarkFailed(ctx context.Context, analysisID uuid.UUID, errMsg string) error {
	args := m.Called(ctx, analysisID, errMsg)
	return args.Error(0)
}

func (m *MockAnalysisRepo) Requeue(ctx context.Context, analysisID uuid.UUID) error {
	args := m.Called(ctx, analysisID)
	return args.Error(0)
}

func (m *MockAnalysisRepo) Delete(ctx context.Context, analysisID uuid.UUID) error {
	args := m.Called(ctx, analysisID)
	return args.Error(0)
}
