package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/metrics"
	"github.com/unyieldapp/unyield-server/internal/models"
)

// Reinstater drives a rejected video back to approved when an appeal wins.
type Reinstater interface {
	ReinstateVideo(ctx context.Context, id, moderatorID uuid.UUID, moderatorName string) (*VerificationResult, error)
}

// AppealService runs the appeal workflow: creatable only against a rejected
// video submission, reviewed exactly once.
type AppealService struct {
	appeals      AppealStore
	videos       VideoSubmissionStore
	verification Reinstater
	audit        *AuditService
}

func NewAppealService(appeals AppealStore, videos VideoSubmissionStore, verification Reinstater, audit *AuditService) *AppealService {
	return &AppealService{appeals: appeals, videos: videos, verification: verification, audit: audit}
}

func (s *AppealService) Create(ctx context.Context, userID, videoSubmissionID uuid.UUID, reason string) (*models.Appeal, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.Validation(apperrors.CodeMissingReason, "appeal reason is required")
	}

	sub, err := s.videos.FindByID(ctx, videoSubmissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.StatusRejected {
		return nil, apperrors.Conflict(apperrors.CodeInvalidInput, "only rejected submissions can be appealed")
	}
	if sub.UserID != userID {
		return nil, apperrors.Validation(apperrors.CodeInvalidInput, "submission does not belong to this user")
	}

	appeal := &models.Appeal{
		ID:                uuid.New(),
		UserID:            userID,
		VideoSubmissionID: videoSubmissionID,
		Reason:            reason,
		Status:            models.AppealPending,
	}
	if err := s.appeals.Create(ctx, appeal); err != nil {
		return nil, err
	}
	return appeal, nil
}

// Review resolves a pending appeal. Approval flips the appeal AND drives the
// underlying video rejected -> approved, re-entering scoring. Denial leaves
// the video rejected. Either way the appeal is terminal afterwards.
func (s *AppealService) Review(ctx context.Context, appealID, moderatorID uuid.UUID, moderatorName, action, notes string) (*models.Appeal, error) {
	var target models.AppealStatus
	switch action {
	case "approve":
		target = models.AppealApproved
	case "deny":
		target = models.AppealDenied
	default:
		return nil, apperrors.Validation(apperrors.CodeInvalidInput, "action must be approve or deny")
	}

	appeal, err := s.appeals.FindByID(ctx, appealID)
	if err != nil {
		return nil, err
	}
	if appeal.Status != models.AppealPending {
		return nil, apperrors.Conflict(apperrors.CodeAlreadyReviewed, "appeal has already been reviewed")
	}

	// Reinstate before the appeal leaves pending: if the video transition
	// fails, the appeal stays reviewable and the moderator can retry.
	if target == models.AppealApproved {
		if _, err := s.verification.ReinstateVideo(ctx, appeal.VideoSubmissionID, moderatorID, moderatorName); err != nil {
			return nil, err
		}
	}

	won, err := s.appeals.TransitionStatus(ctx, appealID, map[string]interface{}{
		"status":       target,
		"reviewed_by":  moderatorID,
		"reviewed_at":  nowUTC(),
		"review_notes": notes,
	})
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperrors.Conflict(apperrors.CodeAlreadyReviewed, "appeal has already been reviewed")
	}
	metrics.ReviewDecisions.WithLabelValues("appeal", action).Inc()

	if err := s.audit.Record(ctx, moderatorID, moderatorName, "review_appeal", "appeal", appealID.String(), map[string]interface{}{
		"action":              action,
		"video_submission_id": appeal.VideoSubmissionID.String(),
	}); err != nil {
		return nil, err
	}

	return s.appeals.FindByID(ctx, appealID)
}

func (s *AppealService) List(ctx context.Context, status models.AppealStatus, limit, offset int) ([]models.Appeal, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.appeals.ListByStatus(ctx, status, limit, offset)
}
