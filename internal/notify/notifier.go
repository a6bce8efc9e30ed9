// internal/notify/notifier.go

// Package notify delivers optional side-channel notifications: a document
// ready email to the requester over SES, and an ops alert over SNS when a
// ticket lands in manual review.
package notify

import (
	"context"
	"fmt"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"hr-service-agent/internal/common/aws"
	"hr-service-agent/internal/common/config"
	apperrors "hr-service-agent/internal/common/errors"
	"hr-service-agent/internal/common/logger"
)

// EmailSender matches the SES wrapper surface; narrowed for tests.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// TopicPublisher matches the SNS wrapper surface; narrowed for tests.
type TopicPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// Notifier sends best-effort notifications. Failures are reported but the
// ticket outcome never depends on them.
type Notifier struct {
	email EmailSender
	topic TopicPublisher
	from  string
	arn   string
	log   logger.Logger
}

// New builds the notifier with real AWS clients.
func New(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*Notifier, error) {
	sesClient, err := aws.NewSESClient(ctx, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("create ses client: %w", err)
	}
	snsClient, err := aws.NewSNSClient(ctx, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("create sns client: %w", err)
	}
	return &Notifier{
		email: sesClient,
		topic: snsClient,
		from:  cfg.FromAddress,
		arn:   cfg.AlertTopic,
		log:   log,
	}, nil
}

// NewWithClients wires explicit senders; used by tests.
func NewWithClients(email EmailSender, topic TopicPublisher, from, arn string, log logger.Logger) *Notifier {
	return &Notifier{email: email, topic: topic, from: from, arn: arn, log: log}
}

// DocumentReady emails the requester a link to their generated document.
func (n *Notifier) DocumentReady(ctx context.Context, toEmail, employeeName, downloadURL, ticketID string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nThe document you requested on ticket %s is ready:\n%s\n\nHR Service Agent",
		employeeName, ticketID, downloadURL)

	_, err := n.email.SendEmail(ctx, &ses.SendEmailInput{
		Source:      awssdk.String(n.from),
		Destination: &sestypes.Destination{ToAddresses: []string{toEmail}},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{
				Data: awssdk.String(fmt.Sprintf("Your HR document for ticket %s is ready", ticketID)),
			},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: awssdk.String(body)},
			},
		},
	})
	if err != nil {
		return &apperrors.StandardError{
			Code:      apperrors.ErrCodeNotificationFailed,
			Message:   "Failed to send document email",
			Details:   fmt.Sprintf("ticket %s: %v", ticketID, err),
			Retryable: true,
			Timestamp: time.Now().UTC(),
		}
	}
	n.log.Info("document email sent", map[string]interface{}{"ticketId": ticketID, "to": toEmail})
	return nil
}

// ManualReviewAlert notifies the HR ops topic that a ticket needs a human.
func (n *Notifier) ManualReviewAlert(ctx context.Context, ticketID, subject string) error {
	if n.arn == "" {
		return nil
	}
	message := fmt.Sprintf("Ticket %s needs manual review.\nSubject: %s", ticketID, subject)
	_, err := n.topic.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(n.arn),
		Subject:  awssdk.String(fmt.Sprintf("HR agent: manual review needed for %s", ticketID)),
		Message:  awssdk.String(message),
	})
	if err != nil {
		return &apperrors.StandardError{
			Code:      apperrors.ErrCodeNotificationFailed,
			Message:   "Failed to publish manual review alert",
			Details:   fmt.Sprintf("ticket %s: %v", ticketID, err),
			Retryable: true,
			Timestamp: time.Now().UTC(),
		}
	}
	return nil
}
