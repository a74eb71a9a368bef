package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus is the primary verification state of any submission.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// SubmissionSource tags which table a merged queue item came from.
type SubmissionSource string

const (
	SourceWorkout   SubmissionSource = "workout"
	SourceChallenge SubmissionSource = "challenge"
)

// VideoSubmission is a proof-of-exercise video awaiting or having undergone
// moderation. VerifiedBy/VerifiedAt are set iff status is not pending;
// PointsAwarded is set only on approval.
type VideoSubmission struct {
	ID               uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	WorkoutID        *uuid.UUID       `gorm:"type:uuid;index" json:"workout_id,omitempty"`
	Exercise         string           `gorm:"size:100;not null;index" json:"exercise"`
	Reps             int              `gorm:"default:0" json:"reps"`
	WeightKg         float64          `gorm:"type:numeric(6,2);default:0" json:"weight_kg"`
	DurationSeconds  int              `gorm:"default:0" json:"duration_seconds"`
	VideoURL         string           `gorm:"type:text;not null" json:"video_url"`
	OriginalVideoURL string           `gorm:"type:text" json:"original_video_url,omitempty"`
	Status           SubmissionStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PointsAwarded    *float64         `gorm:"type:numeric(10,2)" json:"points_awarded,omitempty"`
	VerifiedBy       *uuid.UUID       `gorm:"type:uuid" json:"verified_by,omitempty"`
	VerifiedAt       *time.Time       `json:"verified_at,omitempty"`
	RejectionReason  string           `gorm:"size:500" json:"rejection_reason,omitempty"`
	SubmittedAt      time.Time        `gorm:"not null;index" json:"submitted_at"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (VideoSubmission) TableName() string {
	return "video_submissions"
}
