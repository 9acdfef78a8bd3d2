package noop

import (
	"context"
	"log"

	"takeoffs/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendAnalysisCompleteEmail(_ context.Context, toEmail, toName, projectName, analysisID string) error {
	log.Printf("[NOOP EMAIL] Analysis complete for %s (%s): project %s, analysis %s", toName, toEmail, projectName, analysisID)
	return nil
}

func (s *noopSender) SendAnalysisFailedEmail(_ context.Context, toEmail, toName, projectName, reason string) error {
	log.Printf("[NOOP EMAIL] Analysis failed for %s (%s): project %s, reason: %s", toName, toEmail, projectName, reason)
	return nil
}
