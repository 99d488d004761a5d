// Package crisis sends immediate support notifications when the mood
// analyzer detects elevated risk, and keeps the audit trail of those
// episodes.
package crisis

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/healpraybackend/internal/models"
	"github.com/healpraybackend/internal/mood"
	"github.com/healpraybackend/internal/push"
)

type UserLookup interface {
	GetUser(userID string) (*models.User, error)
}

type EventAppender interface {
	Append(ctx context.Context, event *models.CrisisEvent) error
}

type Notifier struct {
	users  UserLookup
	push   push.Sender
	events EventAppender
	logger *slog.Logger
}

func NewNotifier(users UserLookup, sender push.Sender, events EventAppender, logger *slog.Logger) *Notifier {
	return &Notifier{
		users:  users,
		push:   sender,
		events: events,
		logger: logger,
	}
}

// Trigger sends a high-priority support notification if the user has a
// device token, then appends exactly one crisis event. The event records
// intent: NotificationSent stays true even when no token exists or the
// delivery fails. Trigger never returns an error; failures go to the
// operational log only.
func (n *Notifier) Trigger(ctx context.Context, userID string, averageMood float64, highRisk bool, now time.Time) {
	riskLevel := mood.RiskModerate
	if highRisk {
		riskLevel = mood.RiskHigh
	}

	user, err := n.users.GetUser(userID)
	if err != nil {
		n.logger.Error("crisis support trigger: failed to load user", "user_id", userID, "error", err)
	}

	if user != nil && user.FCMToken != "" {
		err := n.push.Send(ctx, user.FCMToken, push.Notification{
			Title:        "We're here for you 💙",
			Body:         "You're not alone. Tap for support resources and caring guidance.",
			HighPriority: true,
			Data: map[string]string{
				"type":        "crisis_support",
				"averageMood": strconv.FormatFloat(averageMood, 'f', -1, 64),
				"riskLevel":   riskLevel,
			},
		})
		if err != nil {
			n.logger.Error("crisis support notification failed", "user_id", userID, "error", err)
		}
	}

	event := &models.CrisisEvent{
		ID:                uuid.NewString(),
		UserID:            userID,
		Timestamp:         now,
		AverageMood:       averageMood,
		RiskLevel:         riskLevel,
		NotificationSent:  true,
		FollowUpScheduled: true,
	}
	if err := n.events.Append(ctx, event); err != nil {
		n.logger.Error("failed to append crisis event", "user_id", userID, "error", err)
		return
	}

	n.logger.Info("crisis support triggered",
		"user_id", userID, "average_mood", averageMood, "risk_level", riskLevel)
}
