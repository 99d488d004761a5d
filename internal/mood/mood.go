// Package mood computes summary statistics over a user's recent mood
// entries and classifies crisis risk.
package mood

// Risk levels derived from mood statistics, gating crisis notification.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

// Trend directions over the analysis window.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// lowMoodThreshold is the level at or below which an entry counts as a
// low mood.
const lowMoodThreshold = 3

// Average returns the arithmetic mean of moods. Callers must guard the
// empty window; Average returns 0 for it rather than NaN.
func Average(moods []int) float64 {
	if len(moods) == 0 {
		return 0
	}
	sum := 0
	for _, m := range moods {
		sum += m
	}
	return float64(sum) / float64(len(moods))
}

// ConsecutiveLowMoods returns the longest run of consecutive entries at or
// below the low-mood threshold, scanning in the order given (newest-first).
func ConsecutiveLowMoods(moods []int) int {
	consecutive := 0
	max := 0
	for _, m := range moods {
		if m <= lowMoodThreshold {
			consecutive++
			if consecutive > max {
				max = consecutive
			}
		} else {
			consecutive = 0
		}
	}
	return max
}

// TrendDirection compares the mean of the three most recent entries against
// the mean of the three oldest entries in the window. Windows shorter than
// three entries are stable. For windows of three to five entries the two
// triples overlap; that comparison policy is intentional and load-bearing
// for downstream risk history, so do not change it.
func TrendDirection(moods []int) string {
	if len(moods) < 3 {
		return TrendStable
	}

	recent := Average(moods[:3])
	older := Average(moods[len(moods)-3:])

	diff := recent - older
	switch {
	case diff > 0.5:
		return TrendImproving
	case diff < -0.5:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// ClassifyRisk maps window statistics to a risk level. The high check runs
// first: its average threshold is tighter but its streak threshold is
// looser than moderate's, so the two are independent conditions rather
// than an ordering.
func ClassifyRisk(average float64, consecutiveLow int) string {
	if average <= 2 && consecutiveLow >= 2 {
		return RiskHigh
	}
	if average <= 3 && consecutiveLow >= 3 {
		return RiskModerate
	}
	return RiskLow
}
