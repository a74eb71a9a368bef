package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportType string

const (
	ReportSuspiciousLift ReportType = "suspicious_lift"
	ReportFakeVideo      ReportType = "fake_video"
	ReportInappropriate  ReportType = "inappropriate"
	ReportSpam           ReportType = "spam"
	ReportOther          ReportType = "other"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

type ReportAction string

const (
	ActionNone          ReportAction = "no_action"
	ActionWarningIssued ReportAction = "warning_issued"
	ActionVideoRemoved  ReportAction = "video_removed"
	ActionUserSuspended ReportAction = "user_suspended"
)

// Report flags an already-approved VideoSubmission. Resolution records the
// moderator's intent in ActionTaken; it never reverts the approval itself.
type Report struct {
	ID                uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReporterID        uuid.UUID    `gorm:"type:uuid;not null;index" json:"reporter_id"`
	VideoSubmissionID uuid.UUID    `gorm:"type:uuid;not null;index" json:"video_submission_id"`
	ReportType        ReportType   `gorm:"size:30;not null" json:"report_type"`
	Reason            string       `gorm:"size:500;not null" json:"reason"`
	Status            ReportStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ActionTaken       ReportAction `gorm:"size:30;default:'no_action'" json:"action_taken"`
	ReviewedBy        *uuid.UUID   `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time   `json:"reviewed_at,omitempty"`
	ReviewNotes       string       `gorm:"size:1000" json:"review_notes,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}
