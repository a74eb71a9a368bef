package dto

import "github.com/google/uuid"

type ApproveSubmissionRequest struct {
	// PointsOverride replaces the approval estimate when set.
	PointsOverride *float64 `json:"points_override" validate:"omitempty,gte=0"`
}

type RejectSubmissionRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type RemoveVideoRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type CreateAppealRequest struct {
	VideoSubmissionID uuid.UUID `json:"video_submission_id" validate:"required"`
	Reason            string    `json:"reason" validate:"required,max=500"`
}

type ReviewAppealRequest struct {
	Action string `json:"action" validate:"required,oneof=approve deny"`
	Notes  string `json:"notes" validate:"max=1000"`
}

type CreateReportRequest struct {
	VideoSubmissionID uuid.UUID `json:"video_submission_id" validate:"required"`
	ReportType        string    `json:"report_type" validate:"required"`
	Reason            string    `json:"reason" validate:"required,max=500"`
}

type ReviewReportRequest struct {
	Action      string `json:"action" validate:"required,oneof=resolve dismiss"`
	ActionTaken string `json:"action_taken" validate:"omitempty,oneof=no_action warning_issued video_removed user_suspended"`
	Notes       string `json:"notes" validate:"max=1000"`
}
