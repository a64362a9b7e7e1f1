package llm

import (
	"context"
	"errors"
)

// Client abstracts text generation providers for CV analysis.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("text generation not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
// Every call fails, which routes requests through the fallback analyzer.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
