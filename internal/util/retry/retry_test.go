package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	}, WithMaxAttempts(5), WithInterval(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttemptBudget(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return errors.New("endpoint unreachable")
	}, WithMaxAttempts(4), WithInterval(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 4, calls)
	assert.Contains(t, err.Error(), "failed after 4 attempts")
	assert.Contains(t, err.Error(), "endpoint unreachable")
}

func TestDo_FatalErrorStopsImmediately(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return Fatal(errors.New("invalid credentials"))
	}, WithMaxAttempts(10), WithInterval(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "not retrying")
}

func TestDo_ContextCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- Do(ctx, func() error {
			calls++
			return errors.New("still booting")
		}, WithMaxAttempts(100), WithInterval(10*time.Second))
	}()

	cancel()
	err := <-done

	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cancelled")
}

func TestDo_ConstantInterval(t *testing.T) {
	t.Parallel()
	// With no multiplier the wait never grows; three quick attempts
	// must complete well inside the test deadline.
	start := time.Now()
	_ = Do(context.Background(), func() error {
		return errors.New("nope")
	}, WithMaxAttempts(3), WithInterval(5*time.Millisecond))

	assert.Less(t, time.Since(start), time.Second)
}

func TestDo_ExponentialBackoffCapped(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return errors.New("busy")
	},
		WithMaxAttempts(4),
		WithInterval(time.Millisecond),
		WithExponentialBackoff(2.0, 2*time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 4, calls)
}

func TestFatal_NilPassthrough(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Fatal(nil))
}

func TestIsFatal_WrappedError(t *testing.T) {
	t.Parallel()
	inner := errors.New("boom")
	wrapped := fmt.Errorf("context: %w", Fatal(inner))

	assert.True(t, IsFatal(wrapped))
	assert.False(t, IsFatal(inner))
	assert.True(t, errors.Is(wrapped, inner))
}
