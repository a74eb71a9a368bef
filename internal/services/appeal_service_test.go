package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/models"
)

func appealFixture() (appeals *mockAppealStore, videos *mockVideoStore, reinstater *mockReinstater, audit *mockAuditStore, svc *AppealService) {
	appeals = &mockAppealStore{}
	videos = &mockVideoStore{}
	reinstater = &mockReinstater{}
	audit = &mockAuditStore{}
	svc = NewAppealService(appeals, videos, reinstater, NewAuditService(audit))
	return
}

func TestAppealCreateRequiresReason(t *testing.T) {
	_, _, _, _, svc := appealFixture()

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), "  ")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeMissingReason, apperrors.CodeOf(err))
}

func TestAppealCreateOnlyAgainstRejected(t *testing.T) {
	_, videos, _, _, svc := appealFixture()

	userID := uuid.New()
	videos.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.VideoSubmission, error) {
		return &models.VideoSubmission{ID: id, UserID: userID, Status: models.StatusApproved}, nil
	}

	_, err := svc.Create(context.Background(), userID, uuid.New(), "judged unfairly")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestAppealCreateChecksOwnership(t *testing.T) {
	_, videos, _, _, svc := appealFixture()

	videos.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.VideoSubmission, error) {
		return &models.VideoSubmission{ID: id, UserID: uuid.New(), Status: models.StatusRejected}, nil
	}

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), "judged unfairly")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestAppealCreatePending(t *testing.T) {
	appeals, videos, _, _, svc := appealFixture()

	userID := uuid.New()
	videoID := uuid.New()
	videos.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.VideoSubmission, error) {
		return &models.VideoSubmission{ID: id, UserID: userID, Status: models.StatusRejected}, nil
	}
	appeals.createFunc = func(ctx context.Context, appeal *models.Appeal) error {
		return nil
	}

	appeal, err := svc.Create(context.Background(), userID, videoID, "bar touched the chest")
	require.NoError(t, err)
	assert.Equal(t, models.AppealPending, appeal.Status)
	assert.Equal(t, videoID, appeal.VideoSubmissionID)
}

func TestAppealReviewApproveReinstatesVideo(t *testing.T) {
	appeals, _, reinstater, audit, svc := appealFixture()

	videoID := uuid.New()
	appeal := &models.Appeal{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		VideoSubmissionID: videoID,
		Status:            models.AppealPending,
	}
	reinstated := false

	appeals.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Appeal, error) {
		return appeal, nil
	}
	appeals.transitionStatusFunc = func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error) {
		assert.Equal(t, models.AppealApproved, updates["status"])
		return true, nil
	}
	reinstater.reinstateFunc = func(ctx context.Context, id, moderatorID uuid.UUID, moderatorName string) (*VerificationResult, error) {
		reinstated = true
		assert.Equal(t, videoID, id)
		points := 25.0
		return &VerificationResult{ID: id, Status: models.StatusApproved, PointsAwarded: &points}, nil
	}

	_, err := svc.Review(context.Background(), appeal.ID, uuid.New(), "mod", "approve", "clearly valid")
	require.NoError(t, err)
	assert.True(t, reinstated)
	assert.Equal(t, "review_appeal", audit.last().Action)
}

func TestAppealReviewDenyLeavesVideoAlone(t *testing.T) {
	appeals, _, reinstater, _, svc := appealFixture()

	appeal := &models.Appeal{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		VideoSubmissionID: uuid.New(),
		Status:            models.AppealPending,
	}
	reinstated := false

	appeals.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Appeal, error) {
		return appeal, nil
	}
	appeals.transitionStatusFunc = func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error) {
		assert.Equal(t, models.AppealDenied, updates["status"])
		return true, nil
	}
	reinstater.reinstateFunc = func(ctx context.Context, id, moderatorID uuid.UUID, moderatorName string) (*VerificationResult, error) {
		reinstated = true
		return nil, nil
	}

	_, err := svc.Review(context.Background(), appeal.ID, uuid.New(), "mod", "deny", "decision stands")
	require.NoError(t, err)
	assert.False(t, reinstated)
}

func TestAppealReviewRejectsUnknownAction(t *testing.T) {
	_, _, _, _, svc := appealFixture()

	_, err := svc.Review(context.Background(), uuid.New(), uuid.New(), "mod", "escalate", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestAppealReviewAlreadyReviewed(t *testing.T) {
	appeals, _, _, _, svc := appealFixture()

	appeals.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Appeal, error) {
		return &models.Appeal{ID: id, Status: models.AppealDenied}, nil
	}

	_, err := svc.Review(context.Background(), uuid.New(), uuid.New(), "mod", "approve", "")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAlreadyReviewed, apperrors.CodeOf(err))
}

func TestAppealReviewReinstateFailureLeavesAppealPending(t *testing.T) {
	appeals, _, reinstater, _, svc := appealFixture()

	appeal := &models.Appeal{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		VideoSubmissionID: uuid.New(),
		Status:            models.AppealPending,
	}
	transitioned := false

	appeals.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Appeal, error) {
		return appeal, nil
	}
	appeals.transitionStatusFunc = func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error) {
		transitioned = true
		return true, nil
	}
	reinstater.reinstateFunc = func(ctx context.Context, id, moderatorID uuid.UUID, moderatorName string) (*VerificationResult, error) {
		return nil, errors.New("storage down")
	}

	_, err := svc.Review(context.Background(), appeal.ID, uuid.New(), "mod", "approve", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage down")
	assert.False(t, transitioned, "appeal must stay pending when reinstatement fails")
	assert.Equal(t, models.AppealPending, appeal.Status)

	// Once the video transition goes through, retrying the same review succeeds.
	reinstater.reinstateFunc = func(ctx context.Context, id, moderatorID uuid.UUID, moderatorName string) (*VerificationResult, error) {
		points := 25.0
		return &VerificationResult{ID: id, Status: models.StatusApproved, PointsAwarded: &points}, nil
	}

	_, err = svc.Review(context.Background(), appeal.ID, uuid.New(), "mod", "approve", "")
	require.NoError(t, err)
	assert.True(t, transitioned)
}
