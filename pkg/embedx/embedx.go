// Package embedx generates fixed-dimension text embeddings. Two backends are
// provided: a local Ollama server and Google GenAI.
package embedx

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Embedder turns text into a vector of Dimensions() floats.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
	Name() string
}

// HealthChecker is implemented by embedders that can probe their backend.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

var ErrDimensionMismatch = errors.New("embedx: embedding dimension mismatch")

// Config selects and configures a backend.
type Config struct {
	Provider   string // "ollama" or "genai"
	Model      string
	Dimensions int
	OllamaURL  string
	APIKey     string // genai only
}

// New builds the embedder named by cfg.Provider.
func New(ctx context.Context, cfg Config) (Embedder, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "ollama":
		return NewOllama(cfg.OllamaURL, cfg.Model, cfg.Dimensions), nil
	case "genai":
		return NewGenAI(ctx, cfg.APIKey, cfg.Model, cfg.Dimensions)
	default:
		return nil, fmt.Errorf("embedx: unsupported provider %q (use ollama or genai)", cfg.Provider)
	}
}

// CheckDimensions returns ErrDimensionMismatch unless len(vec) == want.
func CheckDimensions(vec []float32, want int) error {
	if len(vec) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), want)
	}
	return nil
}
