package prayer

import (
	"testing"

	"github.com/healpraybackend/internal/models"
)

func intPtr(v int) *int { return &v }

func validRequest() models.PrayerRequest {
	return models.PrayerRequest{
		MoodLevel: intPtr(5),
		Category:  "healing",
		TimeOfDay: "morning",
	}
}

func TestValidateRequestCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		wantOK   bool
	}{
		{"letters only", "healing", true},
		{"interior whitespace", "inner peace", true},
		{"mixed case", "Gratitude", true},
		{"digit", "healing2", false},
		{"symbol", "peace!", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"accented letters", "gratitud Señor", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Category = tt.category
			_, err := ValidateRequest(req)
			if ok := err == nil; ok != tt.wantOK {
				t.Errorf("ValidateRequest(category=%q) error = %v, want ok=%v", tt.category, err, tt.wantOK)
			}
		})
	}
}

func TestValidateRequestMoodLevel(t *testing.T) {
	tests := []struct {
		name   string
		mood   *int
		wantOK bool
	}{
		{"lower bound", intPtr(1), true},
		{"upper bound", intPtr(10), true},
		{"mid range", intPtr(5), true},
		{"zero", intPtr(0), false},
		{"eleven", intPtr(11), false},
		{"negative", intPtr(-3), false},
		{"missing", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.MoodLevel = tt.mood
			_, err := ValidateRequest(req)
			if ok := err == nil; ok != tt.wantOK {
				t.Errorf("ValidateRequest(moodLevel=%v) error = %v, want ok=%v", tt.mood, err, tt.wantOK)
			}
		})
	}
}

func TestValidateRequestRequiredFields(t *testing.T) {
	req := validRequest()
	req.TimeOfDay = ""
	if _, err := ValidateRequest(req); err == nil {
		t.Error("expected error for missing timeOfDay")
	}
}

func TestValidateRequestSanitizesFreeText(t *testing.T) {
	req := validRequest()
	req.TimeOfDay = "<script>evening</script>"
	req.PersonalContext = `grieving a loss & seeking "peace"`

	got, err := ValidateRequest(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TimeOfDay == req.TimeOfDay {
		t.Error("timeOfDay was not escaped")
	}
	if got.PersonalContext == req.PersonalContext {
		t.Error("personalContext was not escaped")
	}
}

func TestValidateRequestCopiesPreferences(t *testing.T) {
	req := validRequest()
	req.UserPreferences = &models.UserPreferences{Denomination: "Buddhist", Tone: "calm"}

	got, err := ValidateRequest(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserPreferences.Denomination != "Buddhist" || got.UserPreferences.Tone != "calm" {
		t.Errorf("preferences not carried: %+v", got.UserPreferences)
	}
}
