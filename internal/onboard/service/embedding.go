package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fmalaspina/vallebot/pkg/embedx"
	"github.com/fmalaspina/vallebot/pkg/retryx"
	"github.com/fmalaspina/vallebot/pkg/slogx"
)

// embedText returns a validated embedding of text or an error wrapping
// ErrEmbeddingUnavailable. A vector of the wrong size is never retried.
func embedText(
	ctx context.Context,
	embedder embedx.Embedder,
	dims int,
	policy retryx.Policy,
	text string,
) ([]float32, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: no embedder configured", ErrEmbeddingUnavailable)
	}
	log := slogx.FromContext(ctx)

	var vec []float32
	err := retryx.Do(ctx, policy, func(ctx context.Context) error {
		v, err := embedder.Embed(ctx, text)
		if err != nil {
			if errors.Is(err, embedx.ErrDimensionMismatch) {
				return retryx.Permanent(err)
			}
			return err
		}
		if err := embedx.CheckDimensions(v, dims); err != nil {
			return retryx.Permanent(err)
		}
		vec = v
		return nil
	}, func(err error, next time.Duration) {
		log.Warn("embedding attempt failed, retrying",
			slog.String("embedder", embedder.Name()),
			slog.Duration("backoff", next),
			slog.Any("error", err),
		)
	})
	if err != nil {
		log.Error("embedding failed",
			slog.String("embedder", embedder.Name()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)
	}
	return vec, nil
}
