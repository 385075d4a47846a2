package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoVal_SucceedsFirstAttempt(t *testing.T) {
	attempts := 0
	val, err := DoVal(context.Background(), RetryConfig{MaxAttempts: 3, Delay: time.Millisecond},
		func(ctx context.Context) (string, error) {
			attempts++
			return "ok", nil
		})

	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 1, attempts)
}

func TestDoVal_RetriesTransportThenSucceeds(t *testing.T) {
	attempts := 0
	val, err := DoVal(context.Background(), RetryConfig{MaxAttempts: 3, Delay: time.Millisecond},
		func(ctx context.Context) (int, error) {
			attempts++
			if attempts < 3 {
				return 0, NewTransportError(errors.New("connection refused"), 0)
			}
			return 42, nil
		})

	require.NoError(t, err)
	assert.Equal(t, 42, val)
	assert.Equal(t, 3, attempts)
}

func TestDoVal_ExactlyThreeAttemptsOnPersistentEmpty(t *testing.T) {
	attempts := 0
	delay := 20 * time.Millisecond
	start := time.Now()

	_, err := DoVal(context.Background(), RetryConfig{MaxAttempts: 3, Delay: delay},
		func(ctx context.Context) ([]string, error) {
			attempts++
			return nil, ErrEmptyResult
		})

	require.Error(t, err)
	assert.True(t, IsEmpty(err))
	assert.Equal(t, 3, attempts)
	// Two inter-attempt delays must have elapsed.
	assert.GreaterOrEqual(t, time.Since(start), 2*delay)
}

func TestDoVal_NonRetryableStopsImmediately(t *testing.T) {
	attempts := 0
	_, err := DoVal(context.Background(), RetryConfig{MaxAttempts: 3, Delay: time.Millisecond},
		func(ctx context.Context) (string, error) {
			attempts++
			return "", errors.New("bad input")
		})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDoVal_ContextCancellationStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0

	_, err := DoVal(ctx, RetryConfig{MaxAttempts: 5, Delay: time.Minute},
		func(ctx context.Context) (string, error) {
			attempts++
			cancel()
			return "", NewTransportError(errors.New("timeout"), 0)
		})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_PropagatesFinalError(t *testing.T) {
	boom := NewMarkupError(errors.New("unexpected structure"))
	err := Do(context.Background(), RetryConfig{MaxAttempts: 2, Delay: time.Millisecond},
		func(ctx context.Context) error {
			return boom
		})

	require.Error(t, err)
	assert.True(t, IsMarkup(err))
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(errors.New("validation failed")))
	assert.True(t, IsRetryable(NewTransportError(errors.New("boom"), 502)))
	assert.True(t, IsRetryable(NewMarkupError(errors.New("bad html"))))
	assert.True(t, IsRetryable(ErrEmptyResult))
	assert.True(t, IsRetryable(errors.New("read tcp: connection reset by peer")))
}
