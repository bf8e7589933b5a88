package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"adsync/internal/core/domain"
)

// retryWithBackoff calls fn up to attempts times, doubling delay after each
// failure. Permanent upstream errors are returned at once. Waits are
// cancelled by ctx.
func retryWithBackoff(ctx context.Context, logger *slog.Logger, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = fn()
		if err == nil {
			return nil
		}
		if domain.IsPermanent(err) {
			return err
		}

		if attempt < attempts-1 {
			logger.Debug("retrying partner call",
				slog.Int("attempt", attempt+1),
				slog.Int("max_attempts", attempts),
				slog.Duration("delay", delay),
				slog.Any("error", err))

			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
			delay *= 2
		}
	}

	return fmt.Errorf("max retry attempts reached: %w", err)
}
