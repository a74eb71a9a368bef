package models

import (
	"time"

	"github.com/google/uuid"
)

// ChallengeSubmission is one entry toward a challenge. Many submissions may
// belong to one (user, challenge) pair when the completion type is cumulative.
// Same verification invariants as VideoSubmission.
type ChallengeSubmission struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index:idx_challenge_subs_user_challenge" json:"user_id"`
	ChallengeID     uuid.UUID        `gorm:"type:uuid;not null;index:idx_challenge_subs_user_challenge" json:"challenge_id"`
	Exercise        string           `gorm:"size:100;index" json:"exercise"`
	Reps            int              `gorm:"default:0" json:"reps"`
	WeightKg        float64          `gorm:"type:numeric(6,2);default:0" json:"weight_kg"`
	DurationSeconds int              `gorm:"default:0" json:"duration_seconds"`
	Value           float64          `gorm:"type:numeric(12,2);not null" json:"value"`
	VideoURL        string           `gorm:"type:text" json:"video_url,omitempty"`
	Status          SubmissionStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	VerifiedBy      *uuid.UUID       `gorm:"type:uuid" json:"verified_by,omitempty"`
	VerifiedAt      *time.Time       `json:"verified_at,omitempty"`
	RejectionReason string           `gorm:"size:500" json:"rejection_reason,omitempty"`
	SubmittedAt     time.Time        `gorm:"not null;index" json:"submitted_at"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (ChallengeSubmission) TableName() string {
	return "challenge_submissions"
}
