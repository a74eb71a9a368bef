package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/models"
)

func reportFixture() (reports *mockReportStore, videos *mockVideoStore, audit *mockAuditStore, svc *ReportService) {
	reports = &mockReportStore{}
	videos = &mockVideoStore{}
	audit = &mockAuditStore{}
	svc = NewReportService(reports, videos, NewAuditService(audit))
	return
}

func TestReportCreateRejectsUnknownType(t *testing.T) {
	_, _, _, svc := reportFixture()

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), "weird", "because")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestReportCreateRequiresReason(t *testing.T) {
	_, _, _, svc := reportFixture()

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), models.ReportFakeVideo, "  ")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeMissingReason, apperrors.CodeOf(err))
}

func TestReportCreateOnlyAgainstApproved(t *testing.T) {
	_, videos, _, svc := reportFixture()

	videos.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.VideoSubmission, error) {
		return &models.VideoSubmission{ID: id, Status: models.StatusPending}, nil
	}

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), models.ReportFakeVideo, "plates look fake")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestReportCreatePending(t *testing.T) {
	reports, videos, _, svc := reportFixture()

	videos.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.VideoSubmission, error) {
		return &models.VideoSubmission{ID: id, Status: models.StatusApproved}, nil
	}
	reports.createFunc = func(ctx context.Context, report *models.Report) error {
		return nil
	}

	report, err := svc.Create(context.Background(), uuid.New(), uuid.New(), models.ReportSuspiciousLift, "bar speed impossible")
	require.NoError(t, err)
	assert.Equal(t, models.ReportPending, report.Status)
	assert.Equal(t, models.ActionNone, report.ActionTaken)
}

func TestReportReviewResolveDefaultsActionTaken(t *testing.T) {
	reports, videos, audit, svc := reportFixture()

	report := &models.Report{
		ID:                uuid.New(),
		VideoSubmissionID: uuid.New(),
		Status:            models.ReportPending,
	}
	videoTouched := false
	var captured map[string]interface{}

	reports.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Report, error) {
		return report, nil
	}
	reports.transitionStatusFunc = func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error) {
		captured = updates
		return true, nil
	}
	videos.transitionStatusFunc = func(ctx context.Context, id uuid.UUID, from models.SubmissionStatus, updates map[string]interface{}) (bool, error) {
		videoTouched = true
		return true, nil
	}

	_, err := svc.Review(context.Background(), report.ID, uuid.New(), "mod", "resolve", "confirmed", "")
	require.NoError(t, err)
	assert.Equal(t, models.ReportResolved, captured["status"])
	assert.Equal(t, models.ActionNone, captured["action_taken"])
	// Resolution records intent only; the submission is never mutated here.
	assert.False(t, videoTouched)
	assert.Equal(t, "review_report", audit.last().Action)
}

func TestReportReviewDismiss(t *testing.T) {
	reports, _, _, svc := reportFixture()

	report := &models.Report{
		ID:                uuid.New(),
		VideoSubmissionID: uuid.New(),
		Status:            models.ReportPending,
	}
	var captured map[string]interface{}

	reports.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Report, error) {
		return report, nil
	}
	reports.transitionStatusFunc = func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error) {
		captured = updates
		return true, nil
	}

	_, err := svc.Review(context.Background(), report.ID, uuid.New(), "mod", "dismiss", "no merit", models.ActionNone)
	require.NoError(t, err)
	assert.Equal(t, models.ReportDismissed, captured["status"])
}

func TestReportReviewRejectsUnknownAction(t *testing.T) {
	_, _, _, svc := reportFixture()

	_, err := svc.Review(context.Background(), uuid.New(), uuid.New(), "mod", "escalate", "", models.ActionNone)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestReportReviewRejectsUnknownActionTaken(t *testing.T) {
	_, _, _, svc := reportFixture()

	_, err := svc.Review(context.Background(), uuid.New(), uuid.New(), "mod", "resolve", "", "banhammer")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestReportReviewAlreadyReviewed(t *testing.T) {
	reports, _, _, svc := reportFixture()

	reports.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Report, error) {
		return &models.Report{ID: id, Status: models.ReportResolved}, nil
	}

	_, err := svc.Review(context.Background(), uuid.New(), uuid.New(), "mod", "resolve", "", models.ActionNone)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAlreadyReviewed, apperrors.CodeOf(err))
}

func TestReportReviewLosesRace(t *testing.T) {
	reports, _, _, svc := reportFixture()

	reports.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Report, error) {
		return &models.Report{ID: id, Status: models.ReportPending}, nil
	}
	reports.transitionStatusFunc = func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error) {
		return false, nil
	}

	_, err := svc.Review(context.Background(), uuid.New(), uuid.New(), "mod", "resolve", "", models.ActionNone)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAlreadyReviewed, apperrors.CodeOf(err))
}
