package openai

import (
	"takeoffs/internal/analyzer"
	"takeoffs/internal/config"
	"takeoffs/internal/port"
)

func init() {
	analyzer.RegisterProvider("openai", func(cfg *config.AnalyzerProviderConfig) (port.BlueprintAnalyzer, error) {
		return NewAnalyzer(cfg), nil
	})
}
