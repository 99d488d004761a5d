// Package ai wraps the text-generation providers behind a single Generator
// interface so the prayer service and its tests never touch provider SDKs
// directly.
package ai

import (
	"context"
	"fmt"

	"github.com/healpraybackend/internal/models"
)

// Generator produces text for a prompt. Implementations make exactly one
// provider call per Generate invocation; retry policy lives in the caller.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*models.AIResult, error)
	Name() string
}

// GenerateWithFallback tries the primary generator once and on any failure
// (including empty content, which generators surface as an error) tries the
// fallback once. Both providers receive the identical prompt. There are no
// further retries.
func GenerateWithFallback(ctx context.Context, primary, fallback Generator, prompt string) (*models.AIResult, error) {
	result, primaryErr := primary.Generate(ctx, prompt)
	if primaryErr == nil {
		return result, nil
	}

	result, fallbackErr := fallback.Generate(ctx, prompt)
	if fallbackErr == nil {
		return result, nil
	}

	return nil, fmt.Errorf("%s failed (%v); %s failed (%v)", primary.Name(), primaryErr, fallback.Name(), fallbackErr)
}
