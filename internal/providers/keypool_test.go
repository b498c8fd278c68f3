package providers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPool_Empty(t *testing.T) {
	pool := NewKeyPool(nil)

	attempts, err := pool.Do(context.Background(), func(ctx context.Context, key string) error {
		t.Fatal("fn should not be called")
		return nil
	}, RetryableStatus)
	assert.ErrorIs(t, err, ErrNoKeys)
	assert.Equal(t, 0, attempts)
}

func TestKeyPool_FirstSuccess(t *testing.T) {
	pool := NewKeyPool([]string{"key-one"})

	var used string
	attempts, err := pool.Do(context.Background(), func(ctx context.Context, key string) error {
		used = key
		return nil
	}, RetryableStatus)
	assert.NoError(t, err)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, "key-one", used)
}

func TestKeyPool_RotatesOnRetryable(t *testing.T) {
	pool := NewKeyPool([]string{"key-one", "key-two", "key-three"})

	calls := 0
	attempts, err := pool.Do(context.Background(), func(ctx context.Context, key string) error {
		calls++
		if calls < 3 {
			return &ProviderError{StatusCode: http.StatusTooManyRequests}
		}
		return nil
	}, RetryableStatus)
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestKeyPool_Exhaustion(t *testing.T) {
	pool := NewKeyPool([]string{"key-one-long", "key-two-long"})

	attempts, err := pool.Do(context.Background(), func(ctx context.Context, key string) error {
		return &ProviderError{StatusCode: http.StatusUnauthorized, Body: "bad key"}
	}, RetryableStatus)
	assert.Equal(t, 2, attempts)

	var exhausted *ExhaustedError
	assert.True(t, errors.As(err, &exhausted))
	assert.Len(t, exhausted.Attempts, 2)
	// Keys are masked in the aggregate error.
	for _, a := range exhausted.Attempts {
		assert.NotContains(t, a.Key, "key-")
		assert.Contains(t, a.Key, "****")
	}
}

func TestKeyPool_NonRetryableStops(t *testing.T) {
	pool := NewKeyPool([]string{"key-one", "key-two", "key-three"})

	serverErr := &ProviderError{StatusCode: http.StatusInternalServerError}
	attempts, err := pool.Do(context.Background(), func(ctx context.Context, key string) error {
		return serverErr
	}, RetryableStatus)
	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, serverErr)
}

func TestKeyPool_CancelledContext(t *testing.T) {
	pool := NewKeyPool([]string{"key-one"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pool.Do(ctx, func(ctx context.Context, key string) error {
		return nil
	}, RetryableStatus)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetryableStatus(t *testing.T) {
	assert.True(t, RetryableStatus(&ProviderError{StatusCode: http.StatusTooManyRequests}))
	assert.True(t, RetryableStatus(&ProviderError{StatusCode: http.StatusUnauthorized}))
	assert.True(t, RetryableStatus(&ProviderError{StatusCode: http.StatusForbidden}))
	assert.False(t, RetryableStatus(&ProviderError{StatusCode: http.StatusInternalServerError}))
	assert.False(t, RetryableStatus(errors.New("plain error")))
}
