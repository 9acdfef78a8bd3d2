package claude

import (
	"takeoffs/internal/analyzer"
	"takeoffs/internal/config"
	"takeoffs/internal/port"
)

func init() {
	analyzer.RegisterProvider("claude", func(cfg *config.AnalyzerProviderConfig) (port.BlueprintAnalyzer, error) {
		return NewAnalyzer(cfg), nil
	})
}
