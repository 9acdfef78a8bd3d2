package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"takeoffs/internal/domain"
	"takeoffs/internal/service"
	"takeoffs/mocks"
)

func TestAnalysisQueueWorker_DispatchesClaimed(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	svc := new(mocks.MockAnalysisService)

	a := domain.Analysis{
		ID:     uuid.New(),
		Trade:  domain.TradePlumbing,
		Status: domain.AnalysisStatusProcessing,
	}

	repo.On("ClaimQueued", mock.Anything, 2, 5).Return([]domain.Analysis{a}, nil).Once()
	repo.On("ClaimQueued", mock.Anything, 2, 5).Return([]domain.Analysis{}, nil)
	svc.On("RunAnalysis", mock.Anything, mock.AnythingOfType("*domain.Analysis"), 5).Return().Once()

	worker := service.NewAnalysisQueueWorker(repo, svc, service.AnalysisQueueConfig{
		PollInterval: 10 * time.Millisecond,
		MaxRetries:   5,
		Concurrency:  2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	worker.Start(ctx)

	svc.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestAnalysisQueueWorker_ClaimErrorKeepsPolling(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	svc := new(mocks.MockAnalysisService)

	repo.On("ClaimQueued", mock.Anything, 1, 3).Return(nil, errors.New("deadlock detected")).Once()
	repo.On("ClaimQueued", mock.Anything, 1, 3).Return([]domain.Analysis{}, nil)

	worker := service.NewAnalysisQueueWorker(repo, svc, service.AnalysisQueueConfig{
		PollInterval: 10 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	worker.Start(ctx)

	// Polling survived the error and kept claiming.
	claims := 0
	for _, call := range repo.Calls {
		if call.Method == "ClaimQueued" {
			claims++
		}
	}
	assert.GreaterOrEqual(t, claims, 2)
	svc.AssertNotCalled(t, "RunAnalysis", mock.Anything, mock.Anything, mock.Anything)
}
