package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/unyieldapp/unyield-server/internal/models"
)

// AuditRepository is append-only by construction: it exposes Create and
// reads, nothing else.
type AuditRepository struct {
	base
}

func NewAuditRepository(db *gorm.DB, policy RetryPolicy) *AuditRepository {
	return &AuditRepository{base{db: db, policy: policy}}
}

func (r *AuditRepository) Create(ctx context.Context, action *models.AdminAction) error {
	return r.do(ctx, func(tx *gorm.DB) error {
		return tx.Create(action).Error
	})
}

func (r *AuditRepository) List(ctx context.Context, targetType, targetID string, limit, offset int) ([]models.AdminAction, int64, error) {
	var actions []models.AdminAction
	var total int64
	err := r.do(ctx, func(tx *gorm.DB) error {
		q := tx.Model(&models.AdminAction{})
		if targetType != "" {
			q = q.Where("target_type = ?", targetType)
		}
		if targetID != "" {
			q = q.Where("target_id = ?", targetID)
		}
		if err := q.Count(&total).Error; err != nil {
			return err
		}
		return q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&actions).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return actions, total, nil
}
