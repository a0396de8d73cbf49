package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai_provider "github.com/SparrowZheyuan18/expert-annotator/provider/openai"
	openrouter_provider "github.com/SparrowZheyuan18/expert-annotator/provider/openrouter"
)

// Client represents different LLM providers
type Client string

const (
	// OpenRouter is the default gateway provider.
	OpenRouter Client = "openrouter"
	// OpenAI is the direct-vendor provider.
	OpenAI Client = "openai"
)

// Provider is the one capability the suggestion pipeline needs: given a
// prompt, return free text or fail.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Options carries per-provider connection settings.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// New creates an LLM client based on the provided configuration.
func New(client Client, opts Options) (Provider, error) {
	if opts.APIKey == "" {
		return nil, errors.New("api key not set")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	switch client {
	case OpenRouter:
		return openrouter_provider.NewClient(opts.APIKey, opts.BaseURL, opts.Model, opts.Timeout), nil
	case OpenAI:
		return openai_provider.NewClient(opts.APIKey, opts.BaseURL, opts.Model, opts.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", client)
	}
}
