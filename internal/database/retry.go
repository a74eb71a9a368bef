package database

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
)

// WithRetry runs op with exponential backoff on transient storage errors.
// Business-rule failures and row-level misses are permanent and returned
// immediately; only infrastructure faults are retried, and only a handful
// of times so a verification call stays fast-or-failed.
func WithRetry(ctx context.Context, timeout time.Duration, maxRetries uint64, op func(ctx context.Context) error) error {
	attempt := func() error {
		opCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		err := op(opCtx)
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) || !apperrors.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(50*time.Millisecond),
		backoff.WithMaxInterval(500*time.Millisecond),
	), maxRetries)

	return backoff.Retry(attempt, backoff.WithContext(policy, ctx))
}
