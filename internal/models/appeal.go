package models

import (
	"time"

	"github.com/google/uuid"
)

type AppealStatus string

const (
	AppealPending  AppealStatus = "pending"
	AppealApproved AppealStatus = "approved"
	AppealDenied   AppealStatus = "denied"
)

// Appeal is creatable only against a rejected VideoSubmission. Approval
// drives the underlying submission rejected -> approved and re-runs scoring.
type Appeal struct {
	ID                uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID            uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	VideoSubmissionID uuid.UUID    `gorm:"type:uuid;not null;index" json:"video_submission_id"`
	Reason            string       `gorm:"size:500;not null" json:"reason"`
	Status            AppealStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReviewedBy        *uuid.UUID   `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time   `json:"reviewed_at,omitempty"`
	ReviewNotes       string       `gorm:"size:1000" json:"review_notes,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

func (Appeal) TableName() string {
	return "appeals"
}
