package core

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionLimiter_AcquireRelease(t *testing.T) {
	limiter := NewConversionLimiter(2, time.Second)
	ctx := context.Background()

	assert.Equal(t, 0, limiter.ActiveCount())
	assert.Equal(t, 2, limiter.Available())

	require.NoError(t, limiter.Acquire(ctx))
	require.NoError(t, limiter.Acquire(ctx))
	assert.Equal(t, 2, limiter.ActiveCount())
	assert.Equal(t, 0, limiter.Available())

	limiter.Release()
	assert.Equal(t, 1, limiter.ActiveCount())
	assert.Equal(t, 1, limiter.Available())

	limiter.Release()
	assert.Equal(t, 0, limiter.ActiveCount())
}

func TestConversionLimiter_TimesOutWhenFull(t *testing.T) {
	limiter := NewConversionLimiter(1, 50*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx))
	defer limiter.Release()

	start := time.Now()
	err := limiter.Acquire(ctx)
	assert.ErrorIs(t, err, ErrTooManyConversions)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestConversionLimiter_ContextCancelled(t *testing.T) {
	limiter := NewConversionLimiter(1, time.Minute)
	require.NoError(t, limiter.Acquire(context.Background()))
	defer limiter.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, limiter.Acquire(ctx), context.Canceled)
}

func TestConversionLimiter_Defaults(t *testing.T) {
	limiter := NewConversionLimiter(0, 0)
	assert.Equal(t, DefaultMaxConcurrent, limiter.MaxConcurrent())
	assert.Equal(t, DefaultMaxWait, limiter.maxWait)
}

func TestConversionLimiter_ConcurrentAccess(t *testing.T) {
	const maxConcurrent = 3
	limiter := NewConversionLimiter(maxConcurrent, time.Second)

	var (
		wg          sync.WaitGroup
		current     atomic.Int32
		maxObserved atomic.Int32
	)

	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Acquire(context.Background()); err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			defer limiter.Release()

			n := current.Add(1)
			for {
				seen := maxObserved.Load()
				if n <= seen || maxObserved.CompareAndSwap(seen, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			current.Add(-1)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, maxObserved.Load(), int32(maxConcurrent))
	assert.Equal(t, 0, limiter.ActiveCount())
}

func TestConversionLimiter_WaitForDrain(t *testing.T) {
	limiter := NewConversionLimiter(2, time.Second)
	require.NoError(t, limiter.Acquire(context.Background()))

	go func() {
		time.Sleep(30 * time.Millisecond)
		limiter.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, limiter.WaitForDrain(ctx))
}

func TestConversionLimiter_WaitForDrainTimeout(t *testing.T) {
	limiter := NewConversionLimiter(1, time.Second)
	require.NoError(t, limiter.Acquire(context.Background()))
	defer limiter.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, limiter.WaitForDrain(ctx), context.DeadlineExceeded)
}

func TestConversionLimiter_Status(t *testing.T) {
	limiter := NewConversionLimiter(4, time.Second)
	require.NoError(t, limiter.Acquire(context.Background()))
	defer limiter.Release()

	assert.Equal(t, LimiterStatus{Active: 1, Available: 3, MaxConcurrent: 4}, limiter.Status())
}
