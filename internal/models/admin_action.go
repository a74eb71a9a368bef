package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdminAction is the append-only audit trail of moderator activity.
// Rows are never updated or deleted.
type AdminAction struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AdminID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"admin_id"`
	AdminName  string         `gorm:"size:100" json:"admin_name"`
	Action     string         `gorm:"size:100;not null;index" json:"action"`
	TargetType string         `gorm:"size:50;not null" json:"target_type"`
	TargetID   string         `gorm:"size:255;not null;index" json:"target_id"`
	Details    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"details"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

func (AdminAction) TableName() string {
	return "admin_actions"
}
