package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Retry calls fn up to attempts times, sleeping delay between failures.
// Databases started alongside the services are often not ready on the
// first try.
func Retry(ctx context.Context, log *slog.Logger, name string, attempts int, delay time.Duration, fn func(context.Context) error) error {
	var err error
	for i := 1; i <= attempts; i++ {
		log.Info("connecting", "target", name, "attempt", i, "of", attempts)
		if err = fn(ctx); err == nil {
			return nil
		}
		log.Warn("connection failed", "target", name, "error", err)

		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("%s unavailable after %d attempts: %w", name, attempts, err)
}
