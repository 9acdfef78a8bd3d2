package analyzer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"takeoffs/internal/analyzer"
	"takeoffs/internal/port"
	"takeoffs/mocks"
)

const (
	onePipeText  = `- Domestic cold water: 100 feet of 3/4" copper`
	twoPipesText = `- Domestic cold water: 100 feet of 3/4" copper
- Sanitary waste: 80 feet of 4" PVC`
)

func mergeOutput(model, text string) *port.AnalyzeOutput {
	return &port.AnalyzeOutput{RawText: text, ModelUsed: model, PromptUsed: "test prompt"}
}

func TestMergeAnalyzer_RicherReplyWins(t *testing.T) {
	primary := new(mocks.MockBlueprintAnalyzer)
	secondary := new(mocks.MockBlueprintAnalyzer)

	input := analyzeInput()
	primary.On("Analyze", mock.Anything, input).Return(mergeOutput("claude", onePipeText), nil)
	secondary.On("Analyze", mock.Anything, input).Return(mergeOutput("gemini", twoPipesText), nil)

	ma := analyzer.NewMergeAnalyzer(primary, secondary)
	result, err := ma.Analyze(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "gemini", result.ModelUsed)
	assert.Equal(t, "secondary", result.Source)
	assert.Equal(t, "claude", result.SecondaryModel)
}

func TestMergeAnalyzer_TieGoesToPrimary(t *testing.T) {
	primary := new(mocks.MockBlueprintAnalyzer)
	secondary := new(mocks.MockBlueprintAnalyzer)

	input := analyzeInput()
	primary.On("Analyze", mock.Anything, input).Return(mergeOutput("claude", twoPipesText), nil)
	secondary.On("Analyze", mock.Anything, input).Return(mergeOutput("gemini", twoPipesText), nil)

	ma := analyzer.NewMergeAnalyzer(primary, secondary)
	result, err := ma.Analyze(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "claude", result.ModelUsed)
	assert.Equal(t, "primary", result.Source)
	assert.Equal(t, "gemini", result.SecondaryModel)
}

func TestMergeAnalyzer_PrimaryFails(t *testing.T) {
	primary := new(mocks.MockBlueprintAnalyzer)
	secondary := new(mocks.MockBlueprintAnalyzer)

	input := analyzeInput()
	primary.On("Analyze", mock.Anything, input).Return(nil, errors.New("boom"))
	secondary.On("Analyze", mock.Anything, input).Return(mergeOutput("gemini", onePipeText), nil)

	ma := analyzer.NewMergeAnalyzer(primary, secondary)
	result, err := ma.Analyze(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "gemini", result.ModelUsed)
	assert.Equal(t, "secondary_only", result.Source)
}

func TestMergeAnalyzer_SecondaryFails(t *testing.T) {
	primary := new(mocks.MockBlueprintAnalyzer)
	secondary := new(mocks.MockBlueprintAnalyzer)

	input := analyzeInput()
	primary.On("Analyze", mock.Anything, input).Return(mergeOutput("claude", onePipeText), nil)
	secondary.On("Analyze", mock.Anything, input).Return(nil, errors.New("boom"))

	ma := analyzer.NewMergeAnalyzer(primary, secondary)
	result, err := ma.Analyze(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "claude", result.ModelUsed)
	assert.Equal(t, "primary_only", result.Source)
}

func TestMergeAnalyzer_BothFail(t *testing.T) {
	primary := new(mocks.MockBlueprintAnalyzer)
	secondary := new(mocks.MockBlueprintAnalyzer)

	input := analyzeInput()
	primary.On("Analyze", mock.Anything, input).Return(nil, errors.New("primary boom"))
	secondary.On("Analyze", mock.Anything, input).Return(nil, errors.New("secondary boom"))

	ma := analyzer.NewMergeAnalyzer(primary, secondary)
	result, err := ma.Analyze(context.Background(), input)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both analyzers failed")
}
