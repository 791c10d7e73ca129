package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingPrunesOldMessages(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, text := range []string{"hola", "Name: Ana"} {
		require.NoError(t, st.Messages().AppendMessage(ctx, domain.Message{
			Direction: domain.DirectionIn, RawSender: phoneP, Text: text,
		}))
	}

	hk := NewHousekeepingService(st, logger, time.Minute, 24*time.Hour)
	require.Zero(t, hk.Cleanup(ctx))

	hk.Now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	require.EqualValues(t, 2, hk.Cleanup(ctx))

	left, err := st.Messages().ListMessagesBySender(ctx, phoneP, 10)
	require.NoError(t, err)
	require.Empty(t, left)
}

func TestHousekeepingStartStop(t *testing.T) {
	st := newTestStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hk := NewHousekeepingService(st, logger, 10*time.Millisecond, time.Hour)
	hk.Start()
	time.Sleep(30 * time.Millisecond)
	hk.Stop()

	disabled := NewHousekeepingService(st, logger, 0, 0)
	require.Equal(t, time.Hour, disabled.Interval)
	disabled.Start()
	disabled.Stop()
}
