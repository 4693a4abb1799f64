package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}, func() error {
		calls++
		return errTransient
	})
	require.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, calls)
}

func TestDo_TerminalErrorStopsImmediately(t *testing.T) {
	terminal := errors.New("forbidden")
	calls := 0
	err := Do(context.Background(), Policy{
		MaxAttempts: 5,
		BaseDelay:   time.Millisecond,
		Retryable:   func(err error) bool { return errors.Is(err, errTransient) },
	}, func() error {
		calls++
		return terminal
	})
	require.ErrorIs(t, err, terminal)
	assert.Equal(t, 1, calls, "terminal errors must not be retried")
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := Do(ctx, Policy{MaxAttempts: 10, BaseDelay: time.Hour}, func() error {
		calls++
		return errTransient
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_DelayDoubles(t *testing.T) {
	base := 10 * time.Millisecond
	start := time.Now()
	_ = Do(context.Background(), Policy{MaxAttempts: 3, BaseDelay: base}, func() error {
		return errTransient
	})
	// Two waits: base + 2*base.
	assert.GreaterOrEqual(t, time.Since(start), 3*base)
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{}, func() error {
		calls++
		return errTransient
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
