package dto

import "time"

type CreateChallengeRequest struct {
	Title           string    `json:"title" validate:"required,max=200"`
	Description     string    `json:"description"`
	ChallengeType   string    `json:"challenge_type" validate:"omitempty,oneof=exercise metric custom"`
	MetricType      string    `json:"metric_type" validate:"required,oneof=reps weight duration workouts"`
	Exercise        string    `json:"exercise" validate:"max=100"`
	Target          float64   `json:"target" validate:"required,gt=0"`
	StartDate       time.Time `json:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date" validate:"required"`
	RegionScope     string    `json:"region_scope"`
	Reward          string    `json:"reward"`
	CompletionType  string    `json:"completion_type" validate:"omitempty,oneof=cumulative single_session best_effort"`
	WinnerCriteria  string    `json:"winner_criteria" validate:"omitempty,oneof=first_to_complete highest_value"`
	RequiresVideo   *bool     `json:"requires_video"`
	MaxParticipants int       `json:"max_participants" validate:"gte=0"`
}
