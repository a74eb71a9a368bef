package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/models"
)

type UserRepository struct {
	base
}

func NewUserRepository(db *gorm.DB, policy RetryPolicy) *UserRepository {
	return &UserRepository{base{db: db, policy: policy}}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.First(&user, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AddPoints increments the point aggregates in one atomic UPDATE so
// concurrent approvals never lose an increment.
func (r *UserRepository) AddPoints(ctx context.Context, id uuid.UUID, points float64) error {
	return r.do(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"total_points":  gorm.Expr("total_points + ?", points),
				"weekly_points": gorm.Expr("weekly_points + ?", points),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
