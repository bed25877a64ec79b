package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/richclient/internal/store"
)

type fakeSweeper struct {
	mu      sync.Mutex
	calls   []time.Duration
	removed int
}

func (f *fakeSweeper) Sweep(idle time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, idle)
	return f.removed
}

func (f *fakeSweeper) Len() int { return 0 }

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("*/10 * * * *"))
	assert.NoError(t, ValidateSchedule("0 3 * * 1"))
	assert.Error(t, ValidateSchedule("every ten minutes"))
	assert.Error(t, ValidateSchedule("0 */10 * * * *"), "seconds field is not accepted")
}

func TestIdleSweepScheduler_RunOnce(t *testing.T) {
	t.Run("passes idle ttl to the registry", func(t *testing.T) {
		fake := &fakeSweeper{removed: 2}
		s := NewIdleSweepScheduler(fake, "*/10 * * * *", 30*time.Minute, zap.NewNop())

		assert.Equal(t, 2, s.RunOnce())
		assert.Equal(t, []time.Duration{30 * time.Minute}, fake.calls)
	})

	t.Run("sweeps a real registry", func(t *testing.T) {
		registry := store.NewRegistry()
		registry.GetOrCreate("a")
		registry.GetOrCreate("b")

		s := NewIdleSweepScheduler(registry, "*/10 * * * *", time.Nanosecond, zap.NewNop())
		time.Sleep(time.Millisecond)

		assert.Equal(t, 2, s.RunOnce())
		assert.Equal(t, 0, registry.Len())
	})
}

func TestIdleSweepScheduler_StartStop(t *testing.T) {
	t.Run("rejects invalid schedule", func(t *testing.T) {
		s := NewIdleSweepScheduler(&fakeSweeper{}, "nope", time.Hour, zap.NewNop())
		err := s.Start(context.Background())
		assert.Error(t, err)
		assert.False(t, s.IsRunning())
	})

	t.Run("rejects non-positive idle ttl", func(t *testing.T) {
		s := NewIdleSweepScheduler(&fakeSweeper{}, "*/10 * * * *", 0, zap.NewNop())
		assert.Error(t, s.Start(context.Background()))
	})

	t.Run("start is idempotent and stop halts", func(t *testing.T) {
		s := NewIdleSweepScheduler(&fakeSweeper{}, "*/10 * * * *", time.Hour, zap.NewNop())

		require.NoError(t, s.Start(context.Background()))
		require.NoError(t, s.Start(context.Background()))
		assert.True(t, s.IsRunning())
		assert.Len(t, s.cron.Entries(), 1)

		s.Stop()
		s.Stop()
		assert.False(t, s.IsRunning())
		assert.Empty(t, s.cron.Entries())
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		s := NewIdleSweepScheduler(&fakeSweeper{}, "*/10 * * * *", time.Hour, zap.NewNop())

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, s.Start(ctx))
		cancel()

		assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
	})
}
