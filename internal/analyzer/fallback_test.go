package analyzer_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"takeoffs/internal/analyzer"
	"takeoffs/internal/domain"
	"takeoffs/internal/port"
	"takeoffs/mocks"
)

func fallbackOutput(model string) *port.AnalyzeOutput {
	return &port.AnalyzeOutput{
		RawText:    `- Domestic cold water: 100 feet of 3/4" copper`,
		ModelUsed:  model,
		PromptUsed: "test prompt",
	}
}

func analyzeInput() port.AnalyzeInput {
	return port.AnalyzeInput{
		FileBytes:   []byte("%PDF-1.4 test"),
		ContentType: "application/pdf",
		Trade:       domain.TradePlumbing,
	}
}

func TestFallbackAnalyzer_FirstSucceeds(t *testing.T) {
	a1 := new(mocks.MockBlueprintAnalyzer)
	a2 := new(mocks.MockBlueprintAnalyzer)
	a3 := new(mocks.MockBlueprintAnalyzer)

	input := analyzeInput()
	a1.On("Analyze", mock.Anything, input).Return(fallbackOutput("claude"), nil)

	fa := analyzer.NewFallbackAnalyzer(
		[]port.BlueprintAnalyzer{a1, a2, a3},
		[]string{"claude", "gemini", "openai"},
	)

	result, err := fa.Analyze(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "claude", result.ModelUsed)
	a2.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
	a3.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestFallbackAnalyzer_FirstFails_SecondSucceeds(t *testing.T) {
	a1 := new(mocks.MockBlueprintAnalyzer)
	a2 := new(mocks.MockBlueprintAnalyzer)

	input := analyzeInput()
	a1.On("Analyze", mock.Anything, input).Return(nil, errors.New("generic error"))
	a2.On("Analyze", mock.Anything, input).Return(fallbackOutput("gemini"), nil)

	fa := analyzer.NewFallbackAnalyzer(
		[]port.BlueprintAnalyzer{a1, a2},
		[]string{"claude", "gemini"},
	)

	result, err := fa.Analyze(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, "gemini", result.ModelUsed)
}

func TestFallbackAnalyzer_FirstRateLimited_SecondSucceeds(t *testing.T) {
	a1 := new(mocks.MockBlueprintAnalyzer)
	a2 := new(mocks.MockBlueprintAnalyzer)

	input := analyzeInput()
	a1.On("Analyze", mock.Anything, input).Return(nil, analyzer.NewRateLimitError("claude", errors.New("429"), 60))
	a2.On("Analyze", mock.Anything, input).Return(fallbackOutput("gemini"), nil)

	fa := analyzer.NewFallbackAnalyzer(
		[]port.BlueprintAnalyzer{a1, a2},
		[]string{"claude", "gemini"},
	)

	result, err := fa.Analyze(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, "gemini", result.ModelUsed)
}

func TestFallbackAnalyzer_AllRateLimited(t *testing.T) {
	a1 := new(mocks.MockBlueprintAnalyzer)
	a2 := new(mocks.MockBlueprintAnalyzer)

	input := analyzeInput()
	a1.On("Analyze", mock.Anything, input).Return(nil, analyzer.NewRateLimitError("claude", errors.New("429"), 60))
	a2.On("Analyze", mock.Anything, input).Return(nil, analyzer.NewRateLimitError("gemini", errors.New("429"), 30))

	fa := analyzer.NewFallbackAnalyzer(
		[]port.BlueprintAnalyzer{a1, a2},
		[]string{"claude", "gemini"},
	)

	result, err := fa.Analyze(context.Background(), input)

	assert.Nil(t, result)
	require.Error(t, err)

	var rlErr *analyzer.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "all", rlErr.Provider)
}

func TestFallbackAnalyzer_AllFail_NonRateLimit(t *testing.T) {
	a1 := new(mocks.MockBlueprintAnalyzer)
	a2 := new(mocks.MockBlueprintAnalyzer)

	input := analyzeInput()
	a1.On("Analyze", mock.Anything, input).Return(nil, errors.New("error 1"))
	a2.On("Analyze", mock.Anything, input).Return(nil, errors.New("error 2"))

	fa := analyzer.NewFallbackAnalyzer(
		[]port.BlueprintAnalyzer{a1, a2},
		[]string{"claude", "gemini"},
	)

	result, err := fa.Analyze(context.Background(), input)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all analyzers failed")

	var rlErr *analyzer.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestFallbackAnalyzer_SkipsOpenCircuit(t *testing.T) {
	a1 := new(mocks.MockBlueprintAnalyzer)
	a2 := new(mocks.MockBlueprintAnalyzer)

	input := analyzeInput()
	a1.On("Analyze", mock.Anything, input).Return(nil, analyzer.NewRateLimitError("claude", errors.New("429"), 60)).Once()
	a2.On("Analyze", mock.Anything, input).Return(fallbackOutput("gemini"), nil)

	fa := analyzer.NewFallbackAnalyzer(
		[]port.BlueprintAnalyzer{a1, a2},
		[]string{"claude", "gemini"},
	)

	result, err := fa.Analyze(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, "gemini", result.ModelUsed)

	// second call right away skips the open circuit
	result, err = fa.Analyze(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, "gemini", result.ModelUsed)

	a1.AssertNumberOfCalls(t, "Analyze", 1)
}

func TestFallbackAnalyzer_CircuitAutoCloses(t *testing.T) {
	a1 := new(mocks.MockBlueprintAnalyzer)
	a2 := new(mocks.MockBlueprintAnalyzer)

	input := analyzeInput()
	a1.On("Analyze", mock.Anything, input).Return(nil, analyzer.NewRateLimitError("claude", errors.New("429"), 1)).Once()
	a2.On("Analyze", mock.Anything, input).Return(fallbackOutput("gemini"), nil).Once()

	fa := analyzer.NewFallbackAnalyzer(
		[]port.BlueprintAnalyzer{a1, a2},
		[]string{"claude", "gemini"},
	)

	result, err := fa.Analyze(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, "gemini", result.ModelUsed)

	time.Sleep(1100 * time.Millisecond)

	a1.On("Analyze", mock.Anything, input).Return(fallbackOutput("claude"), nil).Once()

	result, err = fa.Analyze(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, "claude", result.ModelUsed)
}

func TestFallbackAnalyzer_ConcurrentSafety(t *testing.T) {
	a1 := new(mocks.MockBlueprintAnalyzer)
	a2 := new(mocks.MockBlueprintAnalyzer)

	input := analyzeInput()
	a1.On("Analyze", mock.Anything, input).Return(nil, analyzer.NewRateLimitError("claude", errors.New("429"), 5)).Maybe()
	a2.On("Analyze", mock.Anything, input).Return(fallbackOutput("gemini"), nil).Maybe()

	fa := analyzer.NewFallbackAnalyzer(
		[]port.BlueprintAnalyzer{a1, a2},
		[]string{"claude", "gemini"},
	)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := fa.Analyze(context.Background(), input)
			assert.NoError(t, err)
			assert.NotNil(t, result)
		}()
	}
	wg.Wait()
}
