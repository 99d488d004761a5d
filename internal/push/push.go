// Package push delivers mobile notifications through SNS platform
// endpoints. The token stored on a user is the SNS endpoint ARN registered
// by the mobile client at login.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
)

type Notification struct {
	Title        string
	Body         string
	Data         map[string]string
	HighPriority bool
}

// Target pairs a device token with the notification to deliver to it.
type Target struct {
	Token        string
	Notification Notification
}

// Sender is the delivery capability the notifier and dispatcher depend on.
type Sender interface {
	Send(ctx context.Context, token string, n Notification) error
	SendBatch(ctx context.Context, targets []Target) (sent, failed int)
}

type Service struct {
	sns    *awssns.Client
	logger *slog.Logger
}

func NewService(ctx context.Context, logger *slog.Logger) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %v", err)
	}
	return &Service{
		sns:    awssns.NewFromConfig(cfg),
		logger: logger,
	}, nil
}

type gcmPayload struct {
	Notification map[string]string `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
	Priority     string            `json:"priority,omitempty"`
}

// Send publishes one notification to a device endpoint. One attempt, no
// retries.
func (s *Service) Send(ctx context.Context, token string, n Notification) error {
	payload := gcmPayload{
		Notification: map[string]string{
			"title": n.Title,
			"body":  n.Body,
		},
		Data: n.Data,
	}
	if n.HighPriority {
		payload.Priority = "high"
	}

	gcmJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %v", err)
	}

	message, err := json.Marshal(map[string]string{
		"default": n.Body,
		"GCM":     string(gcmJSON),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal SNS message: %v", err)
	}

	_, err = s.sns.Publish(ctx, &awssns.PublishInput{
		TargetArn:        aws.String(token),
		Message:          aws.String(string(message)),
		MessageStructure: aws.String("json"),
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %v", err)
	}

	return nil
}

// SendBatch delivers one notification per target and returns success and
// failure counts. Individual failures are logged and not retried.
func (s *Service) SendBatch(ctx context.Context, targets []Target) (sent, failed int) {
	for _, t := range targets {
		if err := s.Send(ctx, t.Token, t.Notification); err != nil {
			s.logger.Error("notification send failed", "error", err)
			failed++
			continue
		}
		sent++
	}
	return sent, failed
}
