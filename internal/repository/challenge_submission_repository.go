package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/models"
)

type ChallengeSubmissionRepository struct {
	base
}

func NewChallengeSubmissionRepository(db *gorm.DB, policy RetryPolicy) *ChallengeSubmissionRepository {
	return &ChallengeSubmissionRepository{base{db: db, policy: policy}}
}

func (r *ChallengeSubmissionRepository) Create(ctx context.Context, sub *models.ChallengeSubmission) error {
	return r.do(ctx, func(tx *gorm.DB) error {
		return tx.Create(sub).Error
	})
}

func (r *ChallengeSubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ChallengeSubmission, error) {
	var sub models.ChallengeSubmission
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.First(&sub, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("challenge submission not found")
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// TransitionStatus is the same compare-and-set contract as the video variant.
func (r *ChallengeSubmissionRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from models.SubmissionStatus, updates map[string]interface{}) (bool, error) {
	var won bool
	err := r.do(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.ChallengeSubmission{}).
			Where("id = ? AND status = ?", id, from).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		won = result.RowsAffected > 0
		return nil
	})
	return won, err
}

func (r *ChallengeSubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.do(ctx, func(tx *gorm.DB) error {
		return tx.Delete(&models.ChallengeSubmission{}, "id = ?", id).Error
	})
}

func (r *ChallengeSubmissionRepository) ListPending(ctx context.Context, filter PendingFilter) ([]models.ChallengeSubmission, error) {
	var subs []models.ChallengeSubmission
	err := r.do(ctx, func(tx *gorm.DB) error {
		q := tx.Where("status = ?", models.StatusPending)
		q = applyPendingFilter(q, filter)
		return q.Order("submitted_at ASC").Find(&subs).Error
	})
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *ChallengeSubmissionRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.ChallengeSubmission{}).
			Where("status = ?", models.StatusPending).
			Count(&count).Error
	})
	return count, err
}

// ListApproved returns the user's approved entries for one challenge,
// oldest verification first. This is the completion evaluator's input.
func (r *ChallengeSubmissionRepository) ListApproved(ctx context.Context, userID, challengeID uuid.UUID) ([]models.ChallengeSubmission, error) {
	var subs []models.ChallengeSubmission
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.Where("user_id = ? AND challenge_id = ? AND status = ?", userID, challengeID, models.StatusApproved).
			Order("verified_at ASC").
			Find(&subs).Error
	})
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// ListApprovedByChallenge returns every approved entry for a challenge,
// used for winner determination across participants.
func (r *ChallengeSubmissionRepository) ListApprovedByChallenge(ctx context.Context, challengeID uuid.UUID) ([]models.ChallengeSubmission, error) {
	var subs []models.ChallengeSubmission
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.Where("challenge_id = ? AND status = ?", challengeID, models.StatusApproved).
			Order("verified_at ASC").
			Find(&subs).Error
	})
	if err != nil {
		return nil, err
	}
	return subs, nil
}
