package dto

import "github.com/google/uuid"

type SubmitVideoRequest struct {
	WorkoutID       *uuid.UUID `json:"workout_id"`
	Exercise        string     `json:"exercise" validate:"required,max=100"`
	Reps            int        `json:"reps" validate:"gte=0"`
	WeightKg        float64    `json:"weight_kg" validate:"gte=0"`
	DurationSeconds int        `json:"duration_seconds" validate:"gte=0"`
	VideoURL        string     `json:"video_url" validate:"required,url"`
}

type SubmitChallengeEntryRequest struct {
	ChallengeID     uuid.UUID `json:"challenge_id" validate:"required"`
	Exercise        string    `json:"exercise" validate:"max=100"`
	Reps            int       `json:"reps" validate:"gte=0"`
	WeightKg        float64   `json:"weight_kg" validate:"gte=0"`
	DurationSeconds int       `json:"duration_seconds" validate:"gte=0"`
	VideoURL        string    `json:"video_url" validate:"omitempty,url"`
}
