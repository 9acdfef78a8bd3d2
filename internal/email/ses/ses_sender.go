package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"takeoffs/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendAnalysisCompleteEmail(ctx context.Context, toEmail, toName, projectName, analysisID string) error {
	resultURL := fmt.Sprintf("%s/analyses/%s", s.frontendURL, analysisID)

	subject := fmt.Sprintf("Takeoff ready for %s", projectName)
	htmlBody := buildCompleteHTML(toName, projectName, resultURL)
	textBody := fmt.Sprintf("Hi %s,\n\nYour takeoff analysis for %s has finished. View the estimate here:\n%s\n\nTakeoffs Team", toName, projectName, resultURL)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendAnalysisFailedEmail(ctx context.Context, toEmail, toName, projectName, reason string) error {
	subject := fmt.Sprintf("Takeoff failed for %s", projectName)
	htmlBody := buildFailedHTML(toName, projectName, reason)
	textBody := fmt.Sprintf("Hi %s,\n\nYour takeoff analysis for %s could not be completed.\n\nReason: %s\n\nYou can retry from the project page.\n\nTakeoffs Team", toName, projectName, reason)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildCompleteHTML(name, projectName, resultURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your takeoff is ready</h2>
  <p>Hi %s,</p>
  <p>The takeoff analysis for <strong>%s</strong> has finished. Click the button below to review the estimate:</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Estimate</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Takeoffs - Blueprint Estimation Platform</p>
</body>
</html>`, name, projectName, resultURL, resultURL)
}

func buildFailedHTML(name, projectName, reason string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Takeoff analysis failed</h2>
  <p>Hi %s,</p>
  <p>The takeoff analysis for <strong>%s</strong> could not be completed.</p>
  <p style="background-color: #FEF2F2; border-left: 4px solid #EF4444; padding: 12px; color: #666;">%s</p>
  <p>You can retry the analysis from the project page.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Takeoffs - Blueprint Estimation Platform</p>
</body>
</html>`, name, projectName, reason)
}
