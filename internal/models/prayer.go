package models

import (
	"time"
)

// PrayerRequest is the raw inbound payload for prayer generation, before
// validation. MoodLevel is a pointer so a missing field can be told apart
// from a zero.
type PrayerRequest struct {
	MoodLevel       *int             `json:"moodLevel"`
	Category        string           `json:"category"`
	TimeOfDay       string           `json:"timeOfDay"`
	UserPreferences *UserPreferences `json:"userPreferences,omitempty"`
	PersonalContext string           `json:"personalContext,omitempty"`
}

type UserPreferences struct {
	Denomination string `json:"denomination,omitempty"`
	Language     string `json:"language,omitempty"`
	Tone         string `json:"tone,omitempty"`
	Length       string `json:"length,omitempty"`
}

// PrayerContext is a validated, sanitized prayer request.
type PrayerContext struct {
	MoodLevel       int
	Category        string
	TimeOfDay       string
	UserPreferences UserPreferences
	PersonalContext string
}

// GeneratedPrayer is the immutable record persisted once per successful
// generation. PersonalContext is encrypted at rest (PHI).
type GeneratedPrayer struct {
	ID              string          `dynamodbav:"id" json:"id"`
	UserID          string          `dynamodbav:"user_id" json:"user_id"`
	Content         string          `dynamodbav:"content" json:"content"`
	Category        string          `dynamodbav:"category" json:"category"`
	MoodContext     int             `dynamodbav:"mood_context" json:"mood_context"`
	TimeOfDay       string          `dynamodbav:"time_of_day" json:"time_of_day"`
	CreatedAt       time.Time       `dynamodbav:"created_at" json:"created_at"`
	Source          string          `dynamodbav:"source" json:"source"`
	Model           string          `dynamodbav:"model" json:"model"`
	TokensUsed      int             `dynamodbav:"tokens_used" json:"tokens_used"`
	GenerationTime  int64           `dynamodbav:"generation_time_ms" json:"generation_time_ms"`
	PromptVersion   string          `dynamodbav:"prompt_version" json:"prompt_version"`
	UserPreferences UserPreferences `dynamodbav:"user_preferences" json:"user_preferences"`
	PersonalContext string          `dynamodbav:"personal_context,omitempty" json:"-"`
	Encrypted       bool            `dynamodbav:"encrypted" json:"encrypted"`
}

// AIResult is what a text-generation provider returns on success.
type AIResult struct {
	Content        string
	Model          string
	TokensUsed     int
	GenerationTime time.Duration
}
