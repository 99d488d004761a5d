package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/healpraybackend/internal/models"
)

type fakeGenerator struct {
	name   string
	result *models.AIResult
	err    error
	calls  int
}

func (f *fakeGenerator) Name() string { return f.name }

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (*models.AIResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestGenerateWithFallbackPrimarySucceeds(t *testing.T) {
	primary := &fakeGenerator{name: "primary", result: &models.AIResult{Content: "peace", Model: "gpt-4"}}
	fallback := &fakeGenerator{name: "fallback", result: &models.AIResult{Content: "hope", Model: "gemini-pro"}}

	got, err := GenerateWithFallback(context.Background(), primary, fallback, "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Model != "gpt-4" || got.Content != "peace" {
		t.Errorf("got %+v, want primary result", got)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback called %d times, want 0", fallback.calls)
	}
}

func TestGenerateWithFallbackPrimaryFails(t *testing.T) {
	primary := &fakeGenerator{name: "primary", err: errors.New("rate limited")}
	fallback := &fakeGenerator{name: "fallback", result: &models.AIResult{Content: "hope", Model: "gemini-pro"}}

	got, err := GenerateWithFallback(context.Background(), primary, fallback, "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Model != "gemini-pro" || got.Content != "hope" {
		t.Errorf("got %+v, want fallback result", got)
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Errorf("calls = (%d, %d), want exactly one each", primary.calls, fallback.calls)
	}
}

func TestGenerateWithFallbackBothFail(t *testing.T) {
	primary := &fakeGenerator{name: "primary", err: errors.New("down")}
	fallback := &fakeGenerator{name: "fallback", err: errors.New("also down")}

	_, err := GenerateWithFallback(context.Background(), primary, fallback, "prompt")
	if err == nil {
		t.Fatal("expected error when both providers fail")
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Errorf("calls = (%d, %d), want exactly one each", primary.calls, fallback.calls)
	}
}
