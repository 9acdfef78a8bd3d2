package port

import "context"

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendAnalysisCompleteEmail(ctx context.Context, toEmail, toName, projectName, analysisID string) error
	SendAnalysisFailedEmail(ctx context.Context, toEmail, toName, projectName, reason string) error
}
