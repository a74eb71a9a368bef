package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/models"
)

type ChallengeRepository struct {
	base
}

func NewChallengeRepository(db *gorm.DB, policy RetryPolicy) *ChallengeRepository {
	return &ChallengeRepository{base{db: db, policy: policy}}
}

func (r *ChallengeRepository) Create(ctx context.Context, ch *models.Challenge) error {
	if !ch.EndDate.After(ch.StartDate) {
		return apperrors.Validation(apperrors.CodeInvalidInput, "end date must be after start date")
	}
	if ch.Target <= 0 {
		return apperrors.Validation(apperrors.CodeInvalidInput, "target must be positive")
	}
	return r.do(ctx, func(tx *gorm.DB) error {
		return tx.Create(ch).Error
	})
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
	var ch models.Challenge
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.First(&ch, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("challenge not found")
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// ListActive returns challenges whose window contains now.
func (r *ChallengeRepository) ListActive(ctx context.Context, now time.Time) ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
			Order("end_date ASC").
			Find(&challenges).Error
	})
	if err != nil {
		return nil, err
	}
	return challenges, nil
}
