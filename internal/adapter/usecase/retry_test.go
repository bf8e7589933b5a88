package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsync/internal/core/domain"
)

func TestRetryWithBackoffRetriesTransientErrors(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), discardLogger(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &domain.UpstreamError{Op: "x", StatusCode: http.StatusBadGateway, Err: errors.New("boom")}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoffStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), discardLogger(), 5, time.Millisecond, func() error {
		calls++
		return &domain.UpstreamError{Op: "x", StatusCode: http.StatusUnauthorized, Err: errors.New("denied")}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, domain.IsPermanent(err))
}

func TestRetryWithBackoffExhaustsAttempts(t *testing.T) {
	calls := 0
	cause := errors.New("network down")
	err := retryWithBackoff(context.Background(), discardLogger(), 3, time.Millisecond, func() error {
		calls++
		return cause
	})
	require.ErrorIs(t, err, cause)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "max retry attempts reached")
}

func TestRetryWithBackoffHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := retryWithBackoff(ctx, discardLogger(), 3, time.Hour, func() error {
		calls++
		cancel()
		return errors.New("fail")
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
