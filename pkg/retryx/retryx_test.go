package retryx_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fmalaspina/vallebot/pkg/retryx"
	"github.com/stretchr/testify/require"
)

var fast = retryx.Policy{
	Attempts:        3,
	AttemptTimeout:  50 * time.Millisecond,
	InitialInterval: time.Millisecond,
	MaxInterval:     2 * time.Millisecond,
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	var notified int
	err := retryx.Do(context.Background(), fast, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, func(error, time.Duration) { notified++ })

	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, 2, notified)
}

func TestDoGivesUpAfterAttempts(t *testing.T) {
	boom := errors.New("still down")
	calls := 0
	err := retryx.Do(context.Background(), fast, func(ctx context.Context) error {
		calls++
		return boom
	}, nil)

	require.ErrorIs(t, err, boom)
	require.Equal(t, 3, calls)
}

func TestDoStopsOnPermanent(t *testing.T) {
	bad := errors.New("bad request")
	calls := 0
	err := retryx.Do(context.Background(), fast, func(ctx context.Context) error {
		calls++
		return retryx.Permanent(bad)
	}, nil)

	require.ErrorIs(t, err, bad)
	require.Equal(t, 1, calls)
}

func TestDoAppliesAttemptTimeout(t *testing.T) {
	calls := 0
	err := retryx.Do(context.Background(), fast, func(ctx context.Context) error {
		calls++
		<-ctx.Done()
		return ctx.Err()
	}, nil)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 3, calls)
}

func TestDoHonoursCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retryx.Do(ctx, fast, func(ctx context.Context) error {
		calls++
		return nil
	}, nil)

	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, calls)
}
