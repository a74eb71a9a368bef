// Package repository is the storage layer. Every method takes a context,
// runs through the bounded-retry policy in internal/database, and returns
// apperrors values so callers never see raw driver errors.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/database"
)

// RetryPolicy bounds each storage round trip.
type RetryPolicy struct {
	Timeout    time.Duration
	MaxRetries uint64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Timeout: 5 * time.Second, MaxRetries: 3}
}

type base struct {
	db     *gorm.DB
	policy RetryPolicy
}

// do executes op against a context-scoped session with retries on
// transient failures. Row misses pass through as gorm.ErrRecordNotFound
// for the caller to classify.
func (b base) do(ctx context.Context, op func(tx *gorm.DB) error) error {
	err := database.WithRetry(ctx, b.policy.Timeout, b.policy.MaxRetries, func(c context.Context) error {
		return op(b.db.WithContext(c))
	})
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	var ae *apperrors.AppError
	if errors.As(err, &ae) {
		return err
	}
	return apperrors.Storage("storage operation failed", err)
}

// PendingFilter narrows the moderation queue query.
type PendingFilter struct {
	// Since bounds submitted_at from below (local-midnight boundary);
	// nil means no lower bound.
	Since *time.Time
	// ExerciseContains is a case-insensitive substring match on the
	// exercise name; empty matches everything.
	ExerciseContains string
}

func applyPendingFilter(tx *gorm.DB, f PendingFilter) *gorm.DB {
	if f.Since != nil {
		tx = tx.Where("submitted_at >= ?", *f.Since)
	}
	if f.ExerciseContains != "" {
		tx = tx.Where("exercise ILIKE ?", "%"+escapeLike(f.ExerciseContains)+"%")
	}
	return tx
}

// escapeLike neutralizes LIKE metacharacters so a filter value like
// "100%_raw" matches literally instead of as a pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
