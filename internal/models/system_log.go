package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog stores structured ERROR+ logs for operator querying.
type SystemLog struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Timestamp    time.Time      `gorm:"not null;index" json:"timestamp"`
	Level        string         `gorm:"size:10;not null;index" json:"level"`
	Message      string         `gorm:"type:text" json:"message"`
	TraceID      string         `gorm:"size:36;index" json:"trace_id"`
	ModeratorID  *string        `gorm:"size:36" json:"moderator_id"`
	SubmissionID string         `gorm:"size:36;index" json:"submission_id"`
	Action       string         `gorm:"size:100" json:"action"`
	Error        string         `gorm:"type:text" json:"error"`
	LatencyMs    int            `json:"latency_ms"`
	Extra        datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"extra"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (SystemLog) TableName() string {
	return "system_logs"
}
