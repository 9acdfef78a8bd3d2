package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"takeoffs/internal/port"
)

// MockBlueprintAnalyzer is a mock implementation of port.BlueprintAnalyzer.
type MockBlueprintAnalyzer struct {
	mock.Mock
}

func (m *MockBlueprintAnalyzer) Analyze(ctx context.Context, input port.AnalyzeInput) (*port.AnalyzeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.AnalyzeOutput), args.Error(1)
}
