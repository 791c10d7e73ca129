// Package retryx runs blocking network calls with a per-attempt timeout and
// bounded exponential backoff.
package retryx

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds a retried call.
type Policy struct {
	Attempts        int           // total tries, including the first (min 1)
	AttemptTimeout  time.Duration // deadline applied to each try; 0 disables
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultPolicy is three tries, 200ms doubling up to 2s, 30s per try.
var DefaultPolicy = Policy{
	Attempts:        3,
	AttemptTimeout:  30 * time.Second,
	InitialInterval: 200 * time.Millisecond,
	MaxInterval:     2 * time.Second,
}

// Notify is called after each failed attempt that will be retried.
type Notify func(err error, next time.Duration)

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do calls fn until it succeeds, returns a Permanent error, the attempts are
// exhausted, or ctx is done. The last error is returned.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error, notify Notify) error {
	attempts := max(p.Attempts, 1)

	eb := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		eb.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		eb.MaxInterval = p.MaxInterval
	}
	eb.MaxElapsedTime = 0 // bounded by attempts instead

	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(attempts-1)), ctx)

	op := func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}

		actx, cancel := attemptContext(ctx, p.AttemptTimeout)
		defer cancel()

		err := fn(actx)
		if err != nil && ctx.Err() != nil {
			// The caller gave up; the attempt error is a symptom.
			return backoff.Permanent(errors.Join(ctx.Err(), err))
		}
		return err
	}

	var n backoff.Notify
	if notify != nil {
		n = backoff.Notify(notify)
	}
	return backoff.RetryNotify(op, b, n)
}

func attemptContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
