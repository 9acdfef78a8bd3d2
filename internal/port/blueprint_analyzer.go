package port

import (
	"context"

	"takeoffs/internal/domain"
)

// AnalyzeInput carries the data needed for a blueprint analysis call.
type AnalyzeInput struct {
	FileBytes    []byte
	ContentType  string
	Trade        domain.Trade
	AnalysisType domain.AnalysisType
}

// AnalyzeOutput contains the raw result from an LLM blueprint analyzer. The
// text is unstructured; the takeoff pipeline extracts records from it.
type AnalyzeOutput struct {
	RawText        string
	ModelUsed      string
	PromptUsed     string
	SecondaryModel string // secondary model consulted (dual analysis mode)
	Source         string // which provider's text was selected
}

// BlueprintAnalyzer abstracts LLM-based blueprint analysis.
type BlueprintAnalyzer interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error)
}
