package prayer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/healpraybackend/internal/models"
)

type fakeGenerator struct {
	model   string
	content string
	err     error
}

func (f *fakeGenerator) Name() string { return f.model }

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (*models.AIResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AIResult{Content: f.content, Model: f.model, TokensUsed: 42, GenerationTime: 120 * time.Millisecond}, nil
}

type fakePrayers struct {
	stored []*models.GeneratedPrayer
	err    error
}

func (f *fakePrayers) Put(ctx context.Context, p *models.GeneratedPrayer) error {
	f.stored = append(f.stored, p)
	return f.err
}

type fakeAnalytics struct {
	events []string
	data   []map[string]string
}

func (f *fakeAnalytics) RecordEvent(ctx context.Context, userID, event string, data map[string]string, now time.Time) error {
	f.events = append(f.events, event)
	f.data = append(f.data, data)
	return nil
}

type fakeErrorLog struct {
	records  []string
	contexts []interface{}
}

func (f *fakeErrorLog) Record(ctx context.Context, userID, function string, cause error, reqContext interface{}, now time.Time) error {
	f.records = append(f.records, function)
	f.contexts = append(f.contexts, reqContext)
	return nil
}

type fakeEncrypter struct{}

func (fakeEncrypter) EncryptPHI(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	return "enc:" + plaintext, nil
}

type testHarness struct {
	service  *Service
	prayers  *fakePrayers
	events   *fakeAnalytics
	errorLog *fakeErrorLog
}

func newHarness(primary, fallback *fakeGenerator) *testHarness {
	h := &testHarness{
		prayers:  &fakePrayers{},
		events:   &fakeAnalytics{},
		errorLog: &fakeErrorLog{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h.service = NewService(primary, fallback, h.prayers, h.events, h.errorLog, fakeEncrypter{}, logger)
	return h
}

func generationRequest() models.PrayerRequest {
	mood := 5
	return models.PrayerRequest{
		MoodLevel:       &mood,
		Category:        "healing",
		TimeOfDay:       "morning",
		PersonalContext: "feeling anxious",
	}
}

func TestGenerateSuccess(t *testing.T) {
	primary := &fakeGenerator{model: "gpt-4", content: "a gentle prayer"}
	fallback := &fakeGenerator{model: "gemini-pro", content: "unused"}
	h := newHarness(primary, fallback)

	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	resp, err := h.service.Generate(context.Background(), "u1", generationRequest(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Content != "a gentle prayer" || resp.Metadata.Model != "gpt-4" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.PrayerID == "" {
		t.Error("response missing prayer id")
	}

	if len(h.prayers.stored) != 1 {
		t.Fatalf("stored %d prayers, want 1", len(h.prayers.stored))
	}
	stored := h.prayers.stored[0]
	if stored.UserID != "u1" || stored.Source != "ai_generated" || !stored.CreatedAt.Equal(now) {
		t.Errorf("unexpected stored prayer: %+v", stored)
	}
	if stored.PersonalContext != "enc:feeling anxious" || !stored.Encrypted {
		t.Errorf("personal context not encrypted at rest: %+v", stored)
	}

	if len(h.events.events) != 1 || h.events.events[0] != "prayer_generated" {
		t.Errorf("analytics events = %v, want one prayer_generated", h.events.events)
	}
	if h.events.data[0]["prayerId"] != stored.ID {
		t.Error("analytics event does not reference the prayer id")
	}

	if len(h.errorLog.records) != 0 {
		t.Errorf("error log written on success: %v", h.errorLog.records)
	}
}

func TestGenerateFallsBackToSecondary(t *testing.T) {
	primary := &fakeGenerator{model: "gpt-4", err: errors.New("quota exceeded")}
	fallback := &fakeGenerator{model: "gemini-pro", content: "fallback prayer"}
	h := newHarness(primary, fallback)

	resp, err := h.service.Generate(context.Background(), "u1", generationRequest(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Content != "fallback prayer" || resp.Metadata.Model != "gemini-pro" {
		t.Errorf("expected fallback result, got %+v", resp)
	}
	if len(h.errorLog.records) != 0 {
		t.Errorf("no error-log entry expected when fallback succeeds, got %v", h.errorLog.records)
	}
}

func TestGenerateBothProvidersFail(t *testing.T) {
	primary := &fakeGenerator{model: "gpt-4", err: errors.New("down")}
	fallback := &fakeGenerator{model: "gemini-pro", err: errors.New("also down")}
	h := newHarness(primary, fallback)

	_, err := h.service.Generate(context.Background(), "u1", generationRequest(), time.Now())
	if err == nil {
		t.Fatal("expected internal error when both providers fail")
	}
	if errors.Is(err, ErrInvalidRequest) {
		t.Error("provider failure must not be a client input error")
	}

	if len(h.errorLog.records) != 1 || h.errorLog.records[0] != "generatePrayer" {
		t.Fatalf("error log records = %v, want exactly one generatePrayer entry", h.errorLog.records)
	}
	reqCtx, ok := h.errorLog.contexts[0].(*models.PrayerContext)
	if !ok || reqCtx.Category != "healing" {
		t.Errorf("error log missing request context: %v", h.errorLog.contexts[0])
	}

	if len(h.prayers.stored) != 0 {
		t.Error("no prayer may be stored on final failure")
	}
}

func TestGenerateInvalidRequestNeverCallsProvider(t *testing.T) {
	primary := &fakeGenerator{model: "gpt-4", err: errors.New("must not be called")}
	h := newHarness(primary, primary)

	req := generationRequest()
	req.Category = "123"

	_, err := h.service.Generate(context.Background(), "u1", req, time.Now())
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("error = %v, want ErrInvalidRequest", err)
	}
	if len(h.errorLog.records) != 0 {
		t.Errorf("client input errors must not hit the error log, got %v", h.errorLog.records)
	}
}
