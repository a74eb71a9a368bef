package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/models"
)

type ReportRepository struct {
	base
}

func NewReportRepository(db *gorm.DB, policy RetryPolicy) *ReportRepository {
	return &ReportRepository{base{db: db, policy: policy}}
}

func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.do(ctx, func(tx *gorm.DB) error {
		return tx.Create(report).Error
	})
}

func (r *ReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.First(&report, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("report not found")
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// TransitionStatus moves a report out of pending with compare-and-set
// semantics; false means the report was already reviewed.
func (r *ReportRepository) TransitionStatus(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error) {
	var won bool
	err := r.do(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.Report{}).
			Where("id = ? AND status = ?", id, models.ReportPending).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		won = result.RowsAffected > 0
		return nil
	})
	return won, err
}

func (r *ReportRepository) ListByStatus(ctx context.Context, status models.ReportStatus, limit, offset int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64
	err := r.do(ctx, func(tx *gorm.DB) error {
		q := tx.Model(&models.Report{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if err := q.Count(&total).Error; err != nil {
			return err
		}
		return q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&reports).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}
