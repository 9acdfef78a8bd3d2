package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"takeoffs/internal/domain"
	"takeoffs/internal/service"
	"takeoffs/internal/takeoff"
)

// MockAnalysisService is a mock implementation of service.AnalysisService.
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Request(ctx context.Context, input service.AnalysisRequestInput) (*domain.Analysis, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *MockAnalysisService) GetByID(ctx context.Context, analysisID uuid.UUID) (*domain.Analysis, error) {
	args := m.Called(ctx, analysisID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *MockAnalysisService) GetResult(ctx context.Context, analysisID uuid.UUID) (*takeoff.AnalysisResult, error) {
	args := m.Called(ctx, analysisID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*takeoff.AnalysisResult), args.Error(1)
}

func (m *MockAnalysisService) ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Analysis, int, error) {
	args := m.Called(ctx, projectID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Analysis), args.Int(1), args.Error(2)
}

func (m *MockAnalysisService) ListByBlueprint(ctx context.Context, blueprintID uuid.UUID) ([]domain.Analysis, error) {
	args := m.Called(ctx, blueprintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Analysis), args.Error(1)
}

func (m *MockAnalysisService) AnalyzeText(ctx context.Context, rawText string, input service.AnalysisRequestInput) (*takeoff.AnalysisResult, error) {
	args := m.Called(ctx, rawText, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*takeoff.AnalysisResult), args.Error(1)
}

func (m *MockAnalysisService) RunAnalysis(ctx context.Context, a *domain.Analysis, maxAttempts int) {
	m.Called(ctx, a, maxAttempts)
}
