package cloudbrain

import (
	"fmt"
	"time"
)

// Config holds the CloudBrain option group.
type Config struct {
	Backend    string // "http", "claude", or "openai"
	Endpoint   string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MinConfidence float64
}

// New builds a Predictor for the configured backend, dispatching on the
// backend name.
func New(cfg Config) (Predictor, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	switch cfg.Backend {
	case "", "http":
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("cloudbrain: http backend requires an endpoint")
		}
		return NewHTTPBackend(cfg.Endpoint, cfg.APIKey, timeout), nil
	case "claude", "anthropic":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("cloudbrain: claude backend requires an API key")
		}
		return NewClaudeBackend(cfg.APIKey, cfg.Model, timeout), nil
	case "openai", "gpt":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("cloudbrain: openai backend requires an API key")
		}
		return NewOpenAIBackend(cfg.APIKey, cfg.Model, timeout), nil
	default:
		return nil, fmt.Errorf("cloudbrain: unknown backend %q (supported: http, claude, openai)", cfg.Backend)
	}
}
