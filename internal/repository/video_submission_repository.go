package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/models"
)

type VideoSubmissionRepository struct {
	base
}

func NewVideoSubmissionRepository(db *gorm.DB, policy RetryPolicy) *VideoSubmissionRepository {
	return &VideoSubmissionRepository{base{db: db, policy: policy}}
}

func (r *VideoSubmissionRepository) Create(ctx context.Context, sub *models.VideoSubmission) error {
	return r.do(ctx, func(tx *gorm.DB) error {
		return tx.Create(sub).Error
	})
}

func (r *VideoSubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.VideoSubmission, error) {
	var sub models.VideoSubmission
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.First(&sub, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("video submission not found")
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// TransitionStatus performs the compare-and-set out of `from`. It reports
// whether exactly this call won the transition; a false return with no error
// means another moderator got there first (or the row is gone).
func (r *VideoSubmissionRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from models.SubmissionStatus, updates map[string]interface{}) (bool, error) {
	var won bool
	err := r.do(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.VideoSubmission{}).
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

func (r *VideoSubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.do(ctx, func(tx *gorm.DB) error {
		return tx.Delete(&models.VideoSubmission{}, "id = ?", id).Error
	})
}

func (r *VideoSubmissionRepository) ListPending(ctx context.Context, filter PendingFilter) ([]models.VideoSubmission, error) {
	var subs []models.VideoSubmission
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

func (r *VideoSubmissionRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.VideoSubmission{}).
			Where("status = ?", models.StatusPending).
			Count(&count).Error
	})
	return count, err
}
