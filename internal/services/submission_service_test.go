package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/models"
)

func submissionFixture() (videos *mockVideoStore, entries *mockEntryStore, challenges *mockChallengeStore, users *mockUserStore, svc *SubmissionService) {
	videos = &mockVideoStore{}
	entries = &mockEntryStore{}
	challenges = &mockChallengeStore{}
	users = &mockUserStore{}
	svc = NewSubmissionService(videos, entries, challenges, users)
	return
}

func openChallenge(metric models.MetricType) *models.Challenge {
	now := time.Now()
	return &models.Challenge{
		ID:            uuid.New(),
		Title:         "Open Challenge",
		MetricType:    metric,
		Target:        100,
		StartDate:     now.Add(-24 * time.Hour),
		EndDate:       now.Add(24 * time.Hour),
		IsActive:      true,
		RequiresVideo: true,
	}
}

func TestSubmitVideoRequiresExerciseAndURL(t *testing.T) {
	_, _, _, _, svc := submissionFixture()

	_, err := svc.SubmitVideo(context.Background(), NewVideoSubmission{UserID: uuid.New(), VideoURL: "https://x/v.mp4"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.SubmitVideo(context.Background(), NewVideoSubmission{UserID: uuid.New(), Exercise: "squat"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestSubmitVideoEntersPendingQueue(t *testing.T) {
	videos, _, _, users, svc := submissionFixture()

	userID := uuid.New()
	users.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.User, error) {
		return &models.User{ID: userID}, nil
	}
	var created *models.VideoSubmission
	videos.createFunc = func(ctx context.Context, sub *models.VideoSubmission) error {
		created = sub
		return nil
	}

	sub, err := svc.SubmitVideo(context.Background(), NewVideoSubmission{
		UserID:   userID,
		Exercise: "deadlift",
		Reps:     5,
		WeightKg: 180,
		VideoURL: "https://cdn.example.com/v/9.mp4",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.StatusPending, sub.Status)
	assert.Nil(t, sub.PointsAwarded)
	assert.False(t, sub.SubmittedAt.IsZero())
}

func TestSubmitChallengeEntryEndedChallenge(t *testing.T) {
	_, _, challenges, _, svc := submissionFixture()

	challenge := openChallenge(models.MetricReps)
	challenge.EndDate = time.Now().Add(-time.Hour)
	challenges.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
		return challenge, nil
	}

	_, err := svc.SubmitChallengeEntry(context.Background(), NewChallengeEntry{
		UserID:      uuid.New(),
		ChallengeID: challenge.ID,
		Reps:        20,
		VideoURL:    "https://cdn.example.com/v/1.mp4",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeChallengeEnded, apperrors.CodeOf(err))
}

func TestSubmitChallengeEntryVideoRequired(t *testing.T) {
	_, _, challenges, _, svc := submissionFixture()

	challenge := openChallenge(models.MetricReps)
	challenges.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
		return challenge, nil
	}

	_, err := svc.SubmitChallengeEntry(context.Background(), NewChallengeEntry{
		UserID:      uuid.New(),
		ChallengeID: challenge.ID,
		Reps:        20,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestSubmitChallengeEntryRepsMetric(t *testing.T) {
	_, entries, challenges, users, svc := submissionFixture()

	challenge := openChallenge(models.MetricReps)
	userID := uuid.New()
	challenges.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
		return challenge, nil
	}
	users.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.User, error) {
		return &models.User{ID: userID, BodyweightKg: 80}, nil
	}
	entries.createFunc = func(ctx context.Context, sub *models.ChallengeSubmission) error {
		return nil
	}

	sub, err := svc.SubmitChallengeEntry(context.Background(), NewChallengeEntry{
		UserID:      userID,
		ChallengeID: challenge.ID,
		Exercise:    "pull_up",
		Reps:        22,
		VideoURL:    "https://cdn.example.com/v/2.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, 22.0, sub.Value)
	assert.Equal(t, models.StatusPending, sub.Status)
}

func TestSubmitChallengeEntryWeightMetricNormalizesByBodyweight(t *testing.T) {
	_, entries, challenges, users, svc := submissionFixture()

	challenge := openChallenge(models.MetricWeight)
	userID := uuid.New()
	challenges.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
		return challenge, nil
	}
	users.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.User, error) {
		return &models.User{ID: userID, BodyweightKg: 80}, nil
	}
	entries.createFunc = func(ctx context.Context, sub *models.ChallengeSubmission) error {
		return nil
	}

	sub, err := svc.SubmitChallengeEntry(context.Background(), NewChallengeEntry{
		UserID:      userID,
		ChallengeID: challenge.ID,
		Exercise:    "bench_press",
		Reps:        10,
		WeightKg:    100,
		VideoURL:    "https://cdn.example.com/v/3.mp4",
	})
	require.NoError(t, err)
	// (100/80) * (10*0.1)
	assert.Equal(t, 1.25, sub.Value)
}

func TestSubmitChallengeEntryWeightMetricRejectsMissingBodyweight(t *testing.T) {
	_, _, challenges, users, svc := submissionFixture()

	challenge := openChallenge(models.MetricWeight)
	userID := uuid.New()
	challenges.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
		return challenge, nil
	}
	users.findByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.User, error) {
		return &models.User{ID: userID, BodyweightKg: 0}, nil
	}

	_, err := svc.SubmitChallengeEntry(context.Background(), NewChallengeEntry{
		UserID:      userID,
		ChallengeID: challenge.ID,
		Exercise:    "bench_press",
		Reps:        10,
		WeightKg:    100,
		VideoURL:    "https://cdn.example.com/v/4.mp4",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
}
