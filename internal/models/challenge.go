package models

import (
	"time"

	"github.com/google/uuid"
)

type ChallengeType string

const (
	ChallengeTypeExercise ChallengeType = "exercise"
	ChallengeTypeMetric   ChallengeType = "metric"
	ChallengeTypeCustom   ChallengeType = "custom"
)

type MetricType string

const (
	MetricReps     MetricType = "reps"
	MetricWeight   MetricType = "weight"
	MetricDuration MetricType = "duration"
	MetricWorkouts MetricType = "workouts"
)

// CompletionType governs how multiple approved submissions aggregate toward
// the challenge target.
type CompletionType string

const (
	CompletionCumulative    CompletionType = "cumulative"
	CompletionSingleSession CompletionType = "single_session"
	CompletionBestEffort    CompletionType = "best_effort"
)

// WinnerCriteria is the rule used to rank completed participants.
type WinnerCriteria string

const (
	WinnerFirstToComplete WinnerCriteria = "first_to_complete"
	WinnerHighestValue    WinnerCriteria = "highest_value"
)

// Challenge invariant: EndDate > StartDate. Once EndDate has passed the
// challenge is read-only regardless of IsActive.
type Challenge struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title           string         `gorm:"size:200;not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	ChallengeType   ChallengeType  `gorm:"size:20;not null;default:'exercise'" json:"challenge_type"`
	MetricType      MetricType     `gorm:"size:20;not null;default:'reps'" json:"metric_type"`
	Exercise        string         `gorm:"size:100" json:"exercise"`
	Target          float64        `gorm:"type:numeric(12,2);not null" json:"target"`
	StartDate       time.Time      `gorm:"not null" json:"start_date"`
	EndDate         time.Time      `gorm:"not null;index" json:"end_date"`
	RegionScope     string         `gorm:"size:50;default:'global'" json:"region_scope"`
	Reward          string         `gorm:"size:200" json:"reward"`
	CompletionType  CompletionType `gorm:"size:20;not null;default:'cumulative'" json:"completion_type"`
	WinnerCriteria  WinnerCriteria `gorm:"size:30;not null;default:'first_to_complete'" json:"winner_criteria"`
	RequiresVideo   bool           `gorm:"default:true" json:"requires_video"`
	MaxParticipants int            `gorm:"default:0" json:"max_participants"`
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// Ended reports whether the challenge is past its end date at the given time.
func (c *Challenge) Ended(now time.Time) bool {
	return now.After(c.EndDate)
}
