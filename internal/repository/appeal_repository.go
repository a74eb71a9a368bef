package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/models"
)

type AppealRepository struct {
	base
}

func NewAppealRepository(db *gorm.DB, policy RetryPolicy) *AppealRepository {
	return &AppealRepository{base{db: db, policy: policy}}
}

func (r *AppealRepository) Create(ctx context.Context, appeal *models.Appeal) error {
	return r.do(ctx, func(tx *gorm.DB) error {
		return tx.Create(appeal).Error
	})
}

func (r *AppealRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Appeal, error) {
	var appeal models.Appeal
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.First(&appeal, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("appeal not found")
	}
	if err != nil {
		return nil, err
	}
	return &appeal, nil
}

// TransitionStatus moves an appeal out of pending with compare-and-set
// semantics; false means the appeal was already reviewed.
func (r *AppealRepository) TransitionStatus(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error) {
	var won bool
	err := r.do(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.Appeal{}).
			Where("id = ? AND status = ?", id, models.AppealPending).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		won = result.RowsAffected > 0
		return nil
	})
	return won, err
}

func (r *AppealRepository) ListByStatus(ctx context.Context, status models.AppealStatus, limit, offset int) ([]models.Appeal, int64, error) {
	var appeals []models.Appeal
	var total int64
	err := r.do(ctx, func(tx *gorm.DB) error {
		q := tx.Model(&models.Appeal{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if err := q.Count(&total).Error; err != nil {
			return err
		}
		return q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&appeals).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return appeals, total, nil
}
