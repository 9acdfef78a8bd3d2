package analyzer

import (
	"fmt"

	"takeoffs/internal/config"
	"takeoffs/internal/port"
)

// Build composes the configured providers into a single BlueprintAnalyzer.
// In "merge" mode the primary and secondary run in parallel and the richer
// reply wins; otherwise providers form a rate-limit fallback chain. A lone
// primary is returned as-is.
func Build(cfg *config.AnalyzerConfig) (port.BlueprintAnalyzer, error) {
	primary, err := NewAnalyzer(&cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("building primary analyzer: %w", err)
	}

	var secondary, tertiary port.BlueprintAnalyzer
	if sc := cfg.SecondaryConfig(); sc != nil {
		secondary, err = NewAnalyzer(sc)
		if err != nil {
			return nil, fmt.Errorf("building secondary analyzer: %w", err)
		}
	}
	if tc := cfg.TertiaryConfig(); tc != nil {
		tertiary, err = NewAnalyzer(tc)
		if err != nil {
			return nil, fmt.Errorf("building tertiary analyzer: %w", err)
		}
	}

	if cfg.Mode == "merge" && secondary != nil {
		merged := NewMergeAnalyzer(primary, secondary)
		if tertiary == nil {
			return merged, nil
		}
		return NewFallbackAnalyzer(
			[]port.BlueprintAnalyzer{merged, tertiary},
			[]string{"merge", cfg.Tertiary.Provider},
		), nil
	}

	analyzers := []port.BlueprintAnalyzer{primary}
	names := []string{cfg.Primary.Provider}
	if secondary != nil {
		analyzers = append(analyzers, secondary)
		names = append(names, cfg.Secondary.Provider)
	}
	if tertiary != nil {
		analyzers = append(analyzers, tertiary)
		names = append(names, cfg.Tertiary.Provider)
	}
	if len(analyzers) == 1 {
		return primary, nil
	}
	return NewFallbackAnalyzer(analyzers, names), nil
}
