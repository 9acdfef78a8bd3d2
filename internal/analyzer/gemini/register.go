package gemini

import (
	"takeoffs/internal/analyzer"
	"takeoffs/internal/config"
	"takeoffs/internal/port"
)

func init() {
	analyzer.RegisterProvider("gemini", func(cfg *config.AnalyzerProviderConfig) (port.BlueprintAnalyzer, error) {
		return NewAnalyzer(cfg), nil
	})
}
