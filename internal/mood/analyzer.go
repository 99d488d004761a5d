package mood

import (
	"context"
	"log/slog"
	"time"

	"github.com/healpraybackend/internal/models"
)

// Analysis window bounds: at most windowLimit entries from the last
// windowDays days, newest first.
const (
	windowDays  = 7
	windowLimit = 14
)

type EntrySource interface {
	RecentEntries(ctx context.Context, userID string, since time.Time, limit int) ([]models.MoodEntry, error)
}

type AnalyticsSink interface {
	MergeAnalytics(userID string, a models.UserAnalytics) error
}

type CrisisTrigger interface {
	Trigger(ctx context.Context, userID string, averageMood float64, highRisk bool, now time.Time)
}

type ErrorRecorder interface {
	Record(ctx context.Context, userID, function string, cause error, reqContext interface{}, now time.Time) error
}

// Analyzer runs once per newly logged mood entry. It computes window
// statistics, merges them into the user record and hands elevated risk to
// the crisis notifier.
type Analyzer struct {
	entries   EntrySource
	analytics AnalyticsSink
	crisis    CrisisTrigger
	errorLog  ErrorRecorder
	logger    *slog.Logger
}

func NewAnalyzer(entries EntrySource, analytics AnalyticsSink, crisis CrisisTrigger, errorLog ErrorRecorder, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		entries:   entries,
		analytics: analytics,
		crisis:    crisis,
		errorLog:  errorLog,
		logger:    logger,
	}
}

// Analyze never returns an error: the trigger source has no caller to
// answer to, so failures are written to the error log and swallowed.
// An empty window skips the analytics update entirely rather than storing
// an undefined average.
func (a *Analyzer) Analyze(ctx context.Context, userID string, now time.Time) {
	since := now.AddDate(0, 0, -windowDays)
	entries, err := a.entries.RecentEntries(ctx, userID, since, windowLimit)
	if err != nil {
		a.fail(ctx, userID, err, now)
		return
	}

	if len(entries) == 0 {
		a.logger.Info("no mood entries in window, skipping analysis", "user_id", userID)
		return
	}

	moods := make([]int, len(entries))
	for i, e := range entries {
		moods[i] = e.MoodLevel
	}

	average := Average(moods)
	consecutiveLow := ConsecutiveLowMoods(moods)
	trend := TrendDirection(moods)
	risk := ClassifyRisk(average, consecutiveLow)

	err = a.analytics.MergeAnalytics(userID, models.UserAnalytics{
		AverageMood:         average,
		ConsecutiveLowMoods: consecutiveLow,
		TrendDirection:      trend,
		RiskLevel:           risk,
		LastAnalysisAt:      now,
	})
	if err != nil {
		a.fail(ctx, userID, err, now)
		return
	}

	if risk != RiskLow {
		a.crisis.Trigger(ctx, userID, average, risk == RiskHigh, now)
	}

	a.logger.Info("mood analysis complete",
		"user_id", userID, "average", average, "trend", trend, "risk_level", risk)
}

func (a *Analyzer) fail(ctx context.Context, userID string, cause error, now time.Time) {
	a.logger.Error("mood analysis failed", "user_id", userID, "error", cause)
	if err := a.errorLog.Record(ctx, userID, "analyzeMoodTrends", cause, nil, now); err != nil {
		a.logger.Error("failed to record analysis error", "user_id", userID, "error", err)
	}
}
