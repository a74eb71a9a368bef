package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/metrics"
	"github.com/unyieldapp/unyield-server/internal/models"
)

var validReportTypes = map[models.ReportType]bool{
	models.ReportSuspiciousLift: true,
	models.ReportFakeVideo:      true,
	models.ReportInappropriate:  true,
	models.ReportSpam:           true,
	models.ReportOther:          true,
}

var validReportActions = map[models.ReportAction]bool{
	models.ActionNone:          true,
	models.ActionWarningIssued: true,
	models.ActionVideoRemoved:  true,
	models.ActionUserSuspended: true,
}

// ReportService runs the report workflow over approved video submissions.
// Resolving a report records intent only: even action_taken=video_removed
// does not touch the submission here — the caller applies removal through
// the explicit removal operation.
type ReportService struct {
	reports ReportStore
	videos  VideoSubmissionStore
	audit   *AuditService
}

func NewReportService(reports ReportStore, videos VideoSubmissionStore, audit *AuditService) *ReportService {
	return &ReportService{reports: reports, videos: videos, audit: audit}
}

func (s *ReportService) Create(ctx context.Context, reporterID, videoSubmissionID uuid.UUID, reportType models.ReportType, reason string) (*models.Report, error) {
	if !validReportTypes[reportType] {
		return nil, apperrors.Validation(apperrors.CodeInvalidInput, "invalid report type")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.Validation(apperrors.CodeMissingReason, "report reason is required")
	}

	sub, err := s.videos.FindByID(ctx, videoSubmissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.StatusApproved {
		return nil, apperrors.Conflict(apperrors.CodeInvalidInput, "only approved submissions can be reported")
	}

	report := &models.Report{
		ID:                uuid.New(),
		ReporterID:        reporterID,
		VideoSubmissionID: videoSubmissionID,
		ReportType:        reportType,
		Reason:            reason,
		Status:            models.ReportPending,
		ActionTaken:       models.ActionNone,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Review resolves or dismisses a pending report exactly once.
func (s *ReportService) Review(ctx context.Context, reportID, moderatorID uuid.UUID, moderatorName, action, notes string, actionTaken models.ReportAction) (*models.Report, error) {
	var target models.ReportStatus
	switch action {
	case "resolve":
		target = models.ReportResolved
	case "dismiss":
		target = models.ReportDismissed
	default:
		return nil, apperrors.Validation(apperrors.CodeInvalidInput, "action must be resolve or dismiss")
	}
	if actionTaken == "" {
		actionTaken = models.ActionNone
	}
	if !validReportActions[actionTaken] {
		return nil, apperrors.Validation(apperrors.CodeInvalidInput, "invalid action_taken")
	}

	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != models.ReportPending {
		return nil, apperrors.Conflict(apperrors.CodeAlreadyReviewed, "report has already been reviewed")
	}

	won, err := s.reports.TransitionStatus(ctx, reportID, map[string]interface{}{
		"status":       target,
		"action_taken": actionTaken,
		"reviewed_by":  moderatorID,
		"reviewed_at":  nowUTC(),
		"review_notes": notes,
	})
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperrors.Conflict(apperrors.CodeAlreadyReviewed, "report has already been reviewed")
	}
	metrics.ReviewDecisions.WithLabelValues("report", action).Inc()

	if err := s.audit.Record(ctx, moderatorID, moderatorName, "review_report", "report", reportID.String(), map[string]interface{}{
		"action":              action,
		"action_taken":        string(actionTaken),
		"video_submission_id": report.VideoSubmissionID.String(),
	}); err != nil {
		return nil, err
	}

	return s.reports.FindByID(ctx, reportID)
}

func (s *ReportService) List(ctx context.Context, status models.ReportStatus, limit, offset int) ([]models.Report, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.reports.ListByStatus(ctx, status, limit, offset)
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
