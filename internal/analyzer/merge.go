package analyzer

import (
	"context"
	"fmt"
	"log"
	"sync"

	"takeoffs/internal/port"
	"takeoffs/internal/takeoff"
)

// MergeAnalyzer wraps two BlueprintAnalyzers, runs both in parallel, and
// keeps the reply that the extraction pipeline gets more records out of.
// Free-form analysis text cannot be merged field by field, so the whole
// richer reply wins; ties go to the primary.
type MergeAnalyzer struct {
	primary   port.BlueprintAnalyzer
	secondary port.BlueprintAnalyzer
	extractor *takeoff.Extractor
}

// NewMergeAnalyzer creates a MergeAnalyzer from primary and secondary
// analyzers.
func NewMergeAnalyzer(primary, secondary port.BlueprintAnalyzer) *MergeAnalyzer {
	return &MergeAnalyzer{
		primary:   primary,
		secondary: secondary,
		extractor: takeoff.NewExtractor(),
	}
}

func (m *MergeAnalyzer) Analyze(ctx context.Context, input port.AnalyzeInput) (*port.AnalyzeOutput, error) {
	type result struct {
		output *port.AnalyzeOutput
		err    error
	}

	var wg sync.WaitGroup
	primaryCh := make(chan result, 1)
	secondaryCh := make(chan result, 1)

	wg.Add(2)
	go func() {
		defer wg.Done()
		out, err := m.primary.Analyze(ctx, input)
		primaryCh <- result{out, err}
	}()
	go func() {
		defer wg.Done()
		out, err := m.secondary.Analyze(ctx, input)
		secondaryCh <- result{out, err}
	}()

	wg.Wait()
	close(primaryCh)
	close(secondaryCh)

	pResult := <-primaryCh
	sResult := <-secondaryCh

	// Both failed
	if pResult.err != nil && sResult.err != nil {
		return nil, fmt.Errorf("both analyzers failed: primary: %v; secondary: %v", pResult.err, sResult.err)
	}

	// Only secondary succeeded
	if pResult.err != nil {
		log.Printf("analyzer.MergeAnalyzer: primary analyzer failed (%v), using secondary only", pResult.err)
		sResult.output.Source = "secondary_only"
		sResult.output.SecondaryModel = sResult.output.ModelUsed
		return sResult.output, nil
	}

	// Only primary succeeded
	if sResult.err != nil {
		log.Printf("analyzer.MergeAnalyzer: secondary analyzer failed (%v), using primary only", sResult.err)
		pResult.output.Source = "primary_only"
		return pResult.output, nil
	}

	pCount := m.recordCount(pResult.output.RawText, input)
	sCount := m.recordCount(sResult.output.RawText, input)

	if sCount > pCount {
		log.Printf("analyzer.MergeAnalyzer: secondary yielded %d records vs primary %d, using secondary", sCount, pCount)
		out := sResult.output
		out.Source = "secondary"
		out.SecondaryModel = pResult.output.ModelUsed
		return out, nil
	}

	out := pResult.output
	out.Source = "primary"
	out.SecondaryModel = sResult.output.ModelUsed
	return out, nil
}

func (m *MergeAnalyzer) recordCount(text string, input port.AnalyzeInput) int {
	ext := m.extractor.Extract(text, input.Trade)
	return len(ext.Records)
}
