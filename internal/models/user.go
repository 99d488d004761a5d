package models

import (
	"time"
)

// User is the slice of the user record this backend reads: the delivery
// token and notification preference. Account fields live with the auth
// service that owns them.
type User struct {
	ID                   string `json:"id"`
	Email                string `json:"email"`
	FCMToken             string `json:"-"` // Push token is never exposed in JSON
	MorningNotifications bool   `json:"morning_notifications"`
}

// UserAnalytics is the per-user mood summary merged into the user record by
// the mood trend analyzer. Updates touch only these fields, never the rest
// of the user row.
type UserAnalytics struct {
	AverageMood         float64   `json:"average_mood"`
	ConsecutiveLowMoods int       `json:"consecutive_low_moods"`
	TrendDirection      string    `json:"trend_direction"`
	RiskLevel           string    `json:"risk_level"`
	LastAnalysisAt      time.Time `json:"last_analysis_at"`
}
