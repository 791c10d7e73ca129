// Package llmx wraps chat-completion backends behind a single call that takes
// a system prompt and a user message and returns the model's text reply.
package llmx

import (
	"context"
	"fmt"
	"strings"
)

// Completer produces one completion for a system/user prompt pair.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Config struct {
	Provider  string // "ollama", "genai" or "none"
	Model     string
	OllamaURL string
	APIKey    string
}

// New returns the Completer named by cfg.Provider. Provider "none" yields a
// nil Completer, which disables LLM fallback.
func New(ctx context.Context, cfg Config) (Completer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "none":
		return nil, nil
	case "", "ollama":
		return NewOllama(cfg.OllamaURL, cfg.Model), nil
	case "genai":
		return NewGenAI(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("llmx: unsupported provider %q (use ollama, genai or none)", cfg.Provider)
	}
}

// StripCodeFence removes a single surrounding ``` or ```json fence.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
