// Package llm abstracts structured-completion calls to an LLM provider.
// A request carries system/user text plus an output schema the provider is
// asked to enforce; the response is the raw JSON text payload.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrEmptyResponse reports that the provider returned no textual output.
var ErrEmptyResponse = errors.New("empty response from model")

// Schema is a machine-checkable output contract handed to the provider.
type Schema struct {
	Name       string
	Definition map[string]any
}

// Request is a single structured-completion call.
type Request struct {
	System      string
	User        string
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Client is a provider-agnostic structured-completion client. Implementations
// are safe for concurrent reuse across requests.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Options selects and configures a provider.
type Options struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// New builds a Client for the configured provider.
func New(ctx context.Context, opts Options, logger *zap.Logger) (Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", "openai":
		return NewOpenAIClient(opts.APIKey, opts.Model, opts.BaseURL, logger), nil
	case "gemini":
		return NewGeminiClient(ctx, opts.APIKey, opts.Model, logger)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", opts.Provider)
	}
}
