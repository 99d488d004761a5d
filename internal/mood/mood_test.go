package mood

import (
	"testing"
)

func TestAverage(t *testing.T) {
	tests := []struct {
		name  string
		moods []int
		want  float64
	}{
		{"empty window", nil, 0},
		{"single entry", []int{7}, 7},
		{"mixed", []int{2, 4, 6}, 4},
		{"fractional", []int{1, 2}, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Average(tt.moods); got != tt.want {
				t.Errorf("Average(%v) = %v, want %v", tt.moods, got, tt.want)
			}
		})
	}
}

func TestConsecutiveLowMoods(t *testing.T) {
	tests := []struct {
		name  string
		moods []int
		want  int
	}{
		{"empty", nil, 0},
		{"no lows", []int{5, 6, 8}, 0},
		{"run broken then longer run", []int{4, 2, 2, 2, 5, 1, 1}, 3},
		{"all low", []int{1, 2, 3}, 3},
		{"boundary value counts as low", []int{3}, 1},
		{"four does not count", []int{4}, 0},
		{"longest run tracked across resets", []int{1, 1, 5, 1, 1, 1, 5, 1}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConsecutiveLowMoods(tt.moods); got != tt.want {
				t.Errorf("ConsecutiveLowMoods(%v) = %d, want %d", tt.moods, got, tt.want)
			}
		})
	}
}

func TestTrendDirection(t *testing.T) {
	tests := []struct {
		name  string
		moods []int
		want  string
	}{
		{"fewer than three entries", []int{2, 2}, TrendStable},
		{"recent high older low", []int{8, 8, 8, 2, 2, 2}, TrendImproving},
		{"recent low older high", []int{2, 2, 2, 8, 8, 8}, TrendDeclining},
		{"flat", []int{5, 5, 5, 5, 5, 5}, TrendStable},
		{"difference within half a point", []int{5, 5, 5, 5, 5, 4}, TrendStable},
		{"exactly three entries overlap fully", []int{4, 4, 4}, TrendStable},
		{"five entries share the middle element", []int{8, 8, 8, 2, 2}, TrendImproving},
		{"full fourteen entry window", []int{9, 9, 9, 5, 5, 5, 5, 5, 5, 5, 5, 3, 3, 3}, TrendImproving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrendDirection(tt.moods); got != tt.want {
				t.Errorf("TrendDirection(%v) = %q, want %q", tt.moods, got, tt.want)
			}
		})
	}
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name           string
		average        float64
		consecutiveLow int
		want           string
	}{
		{"low average with streak", 2, 2, RiskHigh},
		{"moderate thresholds", 3, 3, RiskModerate},
		{"healthy", 5, 0, RiskLow},
		{"low average short streak", 1.5, 1, RiskLow},
		{"long streak but average above moderate cutoff", 3.5, 5, RiskLow},
		{"high check wins over moderate", 2, 4, RiskHigh},
		{"moderate average with high-length streak", 2.5, 2, RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRisk(tt.average, tt.consecutiveLow); got != tt.want {
				t.Errorf("ClassifyRisk(%v, %d) = %q, want %q", tt.average, tt.consecutiveLow, got, tt.want)
			}
		})
	}
}
