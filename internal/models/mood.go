package models

import (
	"time"
)

// MoodEntry is written by the mobile client's mood-logging flow and is
// read-only to this backend.
type MoodEntry struct {
	ID        string    `dynamodbav:"id" json:"id"`
	UserID    string    `dynamodbav:"user_id" json:"user_id"`
	MoodLevel int       `dynamodbav:"mood_level" json:"mood_level"`
	Timestamp time.Time `dynamodbav:"ts" json:"timestamp"`
}

// CrisisEvent is an append-only audit record marking that crisis-support
// criteria were met and a notification was attempted. NotificationSent
// records intent, not delivery confirmation.
type CrisisEvent struct {
	ID                string    `dynamodbav:"id" json:"id"`
	UserID            string    `dynamodbav:"user_id" json:"user_id"`
	Timestamp         time.Time `dynamodbav:"ts" json:"timestamp"`
	AverageMood       float64   `dynamodbav:"average_mood" json:"average_mood"`
	RiskLevel         string    `dynamodbav:"risk_level" json:"risk_level"`
	NotificationSent  bool      `dynamodbav:"notification_sent" json:"notification_sent"`
	FollowUpScheduled bool      `dynamodbav:"follow_up_scheduled" json:"follow_up_scheduled"`
}
