package prayer

import (
	"fmt"

	"github.com/healpraybackend/internal/models"
)

// PromptVersion travels with every stored prayer so prompt changes can be
// correlated with generation quality later.
const PromptVersion = "1.0"

// SystemInstruction is the fixed system message sent alongside every
// generation prompt.
const SystemInstruction = "You are a compassionate spiritual companion who creates personalized, inclusive prayers for healing and emotional support. Your prayers bring comfort, hope, and peace to people from all backgrounds and faiths."

// BuildPrompt renders the generation prompt for a validated context. It is
// a pure function: the same context always produces the same prompt.
func BuildPrompt(ctx models.PrayerContext) string {
	var moodDescription string
	switch {
	case ctx.MoodLevel <= 3:
		moodDescription = "struggling, needing comfort and hope"
	case ctx.MoodLevel <= 6:
		moodDescription = "seeking balance and inner peace"
	default:
		moodDescription = "feeling grateful and wanting to celebrate"
	}

	denominationGuidance := "that is inclusive and non-denominational"
	if ctx.UserPreferences.Denomination != "" {
		denominationGuidance = fmt.Sprintf("with %s sensibilities", ctx.UserPreferences.Denomination)
	}

	tone := ctx.UserPreferences.Tone
	if tone == "" {
		tone = "warm and supportive"
	}

	length := ctx.UserPreferences.Length
	if length == "" {
		length = "2-3 paragraphs"
	}

	personalNote := ""
	if ctx.PersonalContext != "" {
		personalNote = fmt.Sprintf("\n\nPersonal context to consider: %s", ctx.PersonalContext)
	}

	return fmt.Sprintf(`Create a heartfelt, compassionate prayer for someone who is %s.

Prayer Details:
- Category: %s
- Time of day: %s
- Mood level: %d/10
- Spiritual approach: %s
- Tone: %s
- Length: %s%s

Requirements:
- Be genuinely compassionate and understanding
- Use inclusive, accessible language
- Avoid denominational specifics unless requested
- Focus on healing, hope, and spiritual strength
- Make it personal and meaningful
- Appropriate for the current mood and circumstances

Create a prayer that truly speaks to someone's heart in this moment.`,
		moodDescription, ctx.Category, ctx.TimeOfDay, ctx.MoodLevel,
		denominationGuidance, tone, length, personalNote)
}
