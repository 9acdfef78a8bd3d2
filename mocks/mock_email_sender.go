package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendAnalysisCompleteEmail(ctx context.Context, toEmail, toName, projectName, analysisID string) error {
	args := m.Called(ctx, toEmail, toName, projectName, analysisID)
	return args.Error(0)
}

func (m *MockEmailSender) SendAnalysisFailedEmail(ctx context.Context, toEmail, toName, projectName, reason string) error {
	args := m.Called(ctx, toEmail, toName, projectName, reason)
	return args.Error(0)
}
