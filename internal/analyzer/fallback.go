package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"takeoffs/internal/port"
)

// circuitState tracks rate-limit backoff for a single analyzer.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackAnalyzer tries analyzers in order, skipping those with open
// circuits. It implements port.BlueprintAnalyzer.
type FallbackAnalyzer struct {
	analyzers []port.BlueprintAnalyzer
	circuits  []*circuitState
	names     []string
}

// NewFallbackAnalyzer creates a FallbackAnalyzer from an ordered list of
// analyzers and their names.
func NewFallbackAnalyzer(analyzers []port.BlueprintAnalyzer, names []string) *FallbackAnalyzer {
	circuits := make([]*circuitState, len(analyzers))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackAnalyzer{
		analyzers: analyzers,
		circuits:  circuits,
		names:     names,
	}
}

func (f *FallbackAnalyzer) Analyze(ctx context.Context, input port.AnalyzeInput) (*port.AnalyzeOutput, error) {
	now := time.Now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, a := range f.analyzers {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("analyzer.FallbackAnalyzer: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := a.Analyze(ctx, input)
		if err == nil {
			return out, nil
		}

		log.Printf("analyzer.FallbackAnalyzer: %s failed: %v", f.names[i], err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil {
		// All analyzers were skipped due to open circuits
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all analyzers rate limited"), int(retryAfter.Seconds()))
	}

	if allRateLimited {
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all analyzers rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all analyzers failed: %w", lastErr)
}
