package prayer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/healpraybackend/internal/ai"
	"github.com/healpraybackend/internal/models"
)

// ErrInvalidRequest marks client input errors so the handler can answer
// 400 instead of 500. Requests failing with it are never written to the
// error log.
var ErrInvalidRequest = errors.New("invalid prayer request")

type PrayerPersister interface {
	Put(ctx context.Context, prayer *models.GeneratedPrayer) error
}

type EventRecorder interface {
	RecordEvent(ctx context.Context, userID, event string, data map[string]string, now time.Time) error
}

type ErrorRecorder interface {
	Record(ctx context.Context, userID, function string, cause error, reqContext interface{}, now time.Time) error
}

type Encrypter interface {
	EncryptPHI(ctx context.Context, plaintext string) (string, error)
}

// Service runs the full generation flow: validate, prompt, generate with
// fallback, persist, record analytics.
type Service struct {
	primary   ai.Generator
	fallback  ai.Generator
	prayers   PrayerPersister
	analytics EventRecorder
	errorLog  ErrorRecorder
	encrypter Encrypter
	logger    *slog.Logger
}

func NewService(primary, fallback ai.Generator, prayers PrayerPersister, analytics EventRecorder, errorLog ErrorRecorder, encrypter Encrypter, logger *slog.Logger) *Service {
	return &Service{
		primary:   primary,
		fallback:  fallback,
		prayers:   prayers,
		analytics: analytics,
		errorLog:  errorLog,
		encrypter: encrypter,
		logger:    logger,
	}
}

type Response struct {
	PrayerID    string           `json:"prayerId"`
	Content     string           `json:"content"`
	Category    string           `json:"category"`
	MoodContext int              `json:"moodContext"`
	Metadata    ResponseMetadata `json:"metadata"`
}

type ResponseMetadata struct {
	Model          string `json:"model"`
	GenerationTime int64  `json:"generationTime"`
}

// Generate produces and persists one prayer for an authenticated user.
// Client input errors come back wrapped in ErrInvalidRequest before any
// provider call; provider or storage failures are written to the error log
// and surfaced as a generic internal error.
func (s *Service) Generate(ctx context.Context, userID string, req models.PrayerRequest, now time.Time) (*Response, error) {
	prayerCtx, err := ValidateRequest(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	prompt := BuildPrompt(*prayerCtx)

	result, err := ai.GenerateWithFallback(ctx, s.primary, s.fallback, prompt)
	if err != nil {
		return nil, s.fail(ctx, userID, err, prayerCtx, now)
	}

	encryptedContext, err := s.encrypter.EncryptPHI(ctx, prayerCtx.PersonalContext)
	if err != nil {
		return nil, s.fail(ctx, userID, err, prayerCtx, now)
	}

	generated := &models.GeneratedPrayer{
		ID:              uuid.NewString(),
		UserID:          userID,
		Content:         result.Content,
		Category:        prayerCtx.Category,
		MoodContext:     prayerCtx.MoodLevel,
		TimeOfDay:       prayerCtx.TimeOfDay,
		CreatedAt:       now,
		Source:          "ai_generated",
		Model:           result.Model,
		TokensUsed:      result.TokensUsed,
		GenerationTime:  result.GenerationTime.Milliseconds(),
		PromptVersion:   PromptVersion,
		UserPreferences: prayerCtx.UserPreferences,
		PersonalContext: encryptedContext,
		Encrypted:       encryptedContext != "",
	}

	if err := s.prayers.Put(ctx, generated); err != nil {
		return nil, s.fail(ctx, userID, err, prayerCtx, now)
	}

	err = s.analytics.RecordEvent(ctx, userID, "prayer_generated", map[string]string{
		"prayerId":       generated.ID,
		"category":       generated.Category,
		"moodLevel":      strconv.Itoa(generated.MoodContext),
		"model":          generated.Model,
		"generationTime": strconv.FormatInt(generated.GenerationTime, 10),
	}, now)
	if err != nil {
		return nil, s.fail(ctx, userID, err, prayerCtx, now)
	}

	s.logger.Info("prayer generated",
		"user_id", userID, "prayer_id", generated.ID, "model", generated.Model,
		"generation_time_ms", generated.GenerationTime)

	return &Response{
		PrayerID:    generated.ID,
		Content:     generated.Content,
		Category:    generated.Category,
		MoodContext: generated.MoodContext,
		Metadata: ResponseMetadata{
			Model:          generated.Model,
			GenerationTime: generated.GenerationTime,
		},
	}, nil
}

func (s *Service) fail(ctx context.Context, userID string, cause error, reqContext *models.PrayerContext, now time.Time) error {
	s.logger.Error("prayer generation failed", "user_id", userID, "error", cause)
	if err := s.errorLog.Record(ctx, userID, "generatePrayer", cause, reqContext, now); err != nil {
		s.logger.Error("failed to record generation error", "user_id", userID, "error", err)
	}
	return fmt.Errorf("failed to generate prayer, please try again")
}
