package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-expense-ledger/internal/logger"
)

type fakePurger struct {
	calls atomic.Int32
	err   error
}

func (f *fakePurger) PurgeExpired(ctx context.Context) (int64, error) {
	f.calls.Add(1)
	return 1, f.err
}

func TestSessionSweeper_SweepsEveryTick(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "purged"},
		{name: "storage error keeps sweeping", err: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			purger := &fakePurger{err: tt.err}
			sweeper := NewSessionSweeper(purger, 5*time.Millisecond, logger.Nop())

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- sweeper.Run(ctx) }()

			require.Eventually(t, func() bool { return purger.calls.Load() >= 2 }, time.Second, time.Millisecond)

			cancel()
			assert.NoError(t, <-done)
		})
	}
}

func TestNewSessionSweeper_DefaultInterval(t *testing.T) {
	sweeper := NewSessionSweeper(&fakePurger{}, 0, logger.Nop())

	assert.Equal(t, defaultSweepInterval, sweeper.interval)
}
