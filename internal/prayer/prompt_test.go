package prayer

import (
	"strings"
	"testing"

	"github.com/healpraybackend/internal/models"
)

func TestBuildPromptMoodBands(t *testing.T) {
	tests := []struct {
		mood int
		want string
	}{
		{1, "struggling, needing comfort and hope"},
		{3, "struggling, needing comfort and hope"},
		{4, "seeking balance and inner peace"},
		{6, "seeking balance and inner peace"},
		{7, "feeling grateful and wanting to celebrate"},
		{10, "feeling grateful and wanting to celebrate"},
	}

	for _, tt := range tests {
		ctx := models.PrayerContext{MoodLevel: tt.mood, Category: "healing", TimeOfDay: "morning"}
		prompt := BuildPrompt(ctx)
		if !strings.Contains(prompt, tt.want) {
			t.Errorf("mood %d: prompt missing %q", tt.mood, tt.want)
		}
	}
}

func TestBuildPromptDenomination(t *testing.T) {
	ctx := models.PrayerContext{MoodLevel: 5, Category: "healing", TimeOfDay: "evening"}

	prompt := BuildPrompt(ctx)
	if !strings.Contains(prompt, "that is inclusive and non-denominational") {
		t.Error("default prompt missing inclusive phrasing")
	}

	ctx.UserPreferences.Denomination = "Catholic"
	prompt = BuildPrompt(ctx)
	if !strings.Contains(prompt, "with Catholic sensibilities") {
		t.Error("denomination preference not interpolated")
	}
}

func TestBuildPromptPersonalContext(t *testing.T) {
	ctx := models.PrayerContext{MoodLevel: 2, Category: "comfort", TimeOfDay: "night"}

	prompt := BuildPrompt(ctx)
	if strings.Contains(prompt, "Personal context to consider") {
		t.Error("personal context block present without personal context")
	}

	ctx.PersonalContext = "recovering from surgery"
	prompt = BuildPrompt(ctx)
	if !strings.Contains(prompt, "Personal context to consider: recovering from surgery") {
		t.Error("personal context not appended")
	}
}

func TestBuildPromptDefaults(t *testing.T) {
	ctx := models.PrayerContext{MoodLevel: 8, Category: "gratitude", TimeOfDay: "morning"}
	prompt := BuildPrompt(ctx)

	for _, want := range []string{
		"- Tone: warm and supportive",
		"- Length: 2-3 paragraphs",
		"- Mood level: 8/10",
		"- Category: gratitude",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	ctx := models.PrayerContext{
		MoodLevel: 5, Category: "peace", TimeOfDay: "noon",
		UserPreferences: models.UserPreferences{Tone: "gentle", Length: "short"},
	}
	if BuildPrompt(ctx) != BuildPrompt(ctx) {
		t.Error("BuildPrompt is not deterministic")
	}
}
