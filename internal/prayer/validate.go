// Package prayer validates prayer requests, builds provider prompts, and
// orchestrates AI generation with provider fallback.
package prayer

import (
	"fmt"
	"html"
	"unicode"

	"github.com/healpraybackend/internal/models"
)

// ValidateRequest checks a raw prayer request and returns the sanitized
// context used for prompt construction. Free-text fields are HTML-escaped
// before any downstream use.
func ValidateRequest(req models.PrayerRequest) (*models.PrayerContext, error) {
	if req.MoodLevel == nil || req.Category == "" || req.TimeOfDay == "" {
		return nil, fmt.Errorf("moodLevel, category and timeOfDay are required")
	}

	if *req.MoodLevel < 1 || *req.MoodLevel > 10 {
		return nil, fmt.Errorf("moodLevel must be between 1 and 10")
	}

	if !isAlpha(req.Category) {
		return nil, fmt.Errorf("category must contain only letters")
	}

	ctx := &models.PrayerContext{
		MoodLevel:       *req.MoodLevel,
		Category:        html.EscapeString(req.Category),
		TimeOfDay:       html.EscapeString(req.TimeOfDay),
		PersonalContext: html.EscapeString(req.PersonalContext),
	}
	if req.UserPreferences != nil {
		ctx.UserPreferences = *req.UserPreferences
	}

	return ctx, nil
}

// isAlpha reports whether s consists solely of letters once whitespace is
// stripped. An all-whitespace or empty string fails.
func isAlpha(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if !unicode.IsLetter(r) {
			return false
		}
		letters++
	}
	return letters > 0
}
