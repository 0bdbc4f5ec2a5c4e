package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/matchboard/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 100 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// RetryingBackend retries failed loads and saves against a remote backend.
// Missing keys and cancelled contexts are returned immediately.
type RetryingBackend struct {
	inner       Backend
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingBackend wraps inner with linear backoff retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingBackend(inner Backend, logger *slog.Logger, maxAttempts int, backoff time.Duration) *RetryingBackend {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &RetryingBackend{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *RetryingBackend) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.do(ctx, "load", key, func() error {
		var err error
		data, err = r.inner.Load(ctx, key)
		return err
	})
	return data, err
}

func (r *RetryingBackend) Save(ctx context.Context, key string, data []byte) error {
	return r.do(ctx, "save", key, func() error {
		return r.inner.Save(ctx, key, data)
	})
}

func (r *RetryingBackend) Ping(ctx context.Context) error { return r.inner.Ping(ctx) }
func (r *RetryingBackend) Close() error                   { return r.inner.Close() }

func (r *RetryingBackend) do(ctx context.Context, op, key string, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := fn()
		if err == nil || !retryable(err) {
			return err
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		logging.Warn(logging.FromContext(ctx, r.logger), "storage "+op+" retry",
			slog.String(logging.FieldCollection, key),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Any("error", err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoffFn(attempt)):
		}
	}

	return lastErr
}

func retryable(err error) bool {
	return !errors.Is(err, ErrNotExist) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
