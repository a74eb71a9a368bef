package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/models"
	"github.com/unyieldapp/unyield-server/internal/scoring"
)

// SubmissionService handles intake: new proof videos and challenge entries
// entering the pending queue. Everything downstream belongs to the
// verification workflow.
type SubmissionService struct {
	videos     VideoSubmissionStore
	entries    ChallengeSubmissionStore
	challenges ChallengeStore
	users      UserStore
	now        func() time.Time
}

func NewSubmissionService(videos VideoSubmissionStore, entries ChallengeSubmissionStore, challenges ChallengeStore, users UserStore) *SubmissionService {
	return &SubmissionService{videos: videos, entries: entries, challenges: challenges, users: users, now: time.Now}
}

type NewVideoSubmission struct {
	UserID          uuid.UUID
	WorkoutID       *uuid.UUID
	Exercise        string
	Reps            int
	WeightKg        float64
	DurationSeconds int
	VideoURL        string
}

func (s *SubmissionService) SubmitVideo(ctx context.Context, in NewVideoSubmission) (*models.VideoSubmission, error) {
	if strings.TrimSpace(in.Exercise) == "" {
		return nil, apperrors.Validation(apperrors.CodeInvalidInput, "exercise is required")
	}
	if strings.TrimSpace(in.VideoURL) == "" {
		return nil, apperrors.Validation(apperrors.CodeInvalidInput, "video URL is required")
	}
	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	sub := &models.VideoSubmission{
		ID:              uuid.New(),
		UserID:          in.UserID,
		WorkoutID:       in.WorkoutID,
		Exercise:        in.Exercise,
		Reps:            in.Reps,
		WeightKg:        in.WeightKg,
		DurationSeconds: in.DurationSeconds,
		VideoURL:        in.VideoURL,
		Status:          models.StatusPending,
		SubmittedAt:     s.now(),
	}
	if err := s.videos.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

type NewChallengeEntry struct {
	UserID          uuid.UUID
	ChallengeID     uuid.UUID
	Exercise        string
	Reps            int
	WeightKg        float64
	DurationSeconds int
	VideoURL        string
}

// SubmitChallengeEntry derives the entry's value from the challenge metric
// and queues it for moderation. Ended challenges accept no new entries.
func (s *SubmissionService) SubmitChallengeEntry(ctx context.Context, in NewChallengeEntry) (*models.ChallengeSubmission, error) {
	challenge, err := s.challenges.FindByID(ctx, in.ChallengeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if challenge.Ended(now) {
		return nil, apperrors.Conflict(apperrors.CodeChallengeEnded, "challenge has ended")
	}
	if !challenge.IsActive || now.Before(challenge.StartDate) {
		return nil, apperrors.Conflict(apperrors.CodeChallengeEnded, "challenge is not open for entries")
	}
	if challenge.RequiresVideo && strings.TrimSpace(in.VideoURL) == "" {
		return nil, apperrors.Validation(apperrors.CodeInvalidInput, "this challenge requires a proof video")
	}

	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	value, err := entryValue(challenge, user, in)
	if err != nil {
		return nil, err
	}

	sub := &models.ChallengeSubmission{
		ID:              uuid.New(),
		UserID:          in.UserID,
		ChallengeID:     in.ChallengeID,
		Exercise:        in.Exercise,
		Reps:            in.Reps,
		WeightKg:        in.WeightKg,
		DurationSeconds: in.DurationSeconds,
		Value:           value,
		VideoURL:        in.VideoURL,
		Status:          models.StatusPending,
		SubmittedAt:     now,
	}
	if err := s.entries.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// entryValue maps raw performance numbers onto the challenge's metric.
// Weight challenges score the bodyweight-normalized strength ratio so
// lighter athletes compete on equal footing.
func entryValue(challenge *models.Challenge, user *models.User, in NewChallengeEntry) (float64, error) {
	switch challenge.MetricType {
	case models.MetricReps:
		return float64(in.Reps), nil
	case models.MetricWeight:
		return scoring.StrengthRatio(in.WeightKg, user.BodyweightKg, in.Reps)
	case models.MetricDuration:
		return float64(in.DurationSeconds), nil
	case models.MetricWorkouts:
		return 1, nil
	default:
		return 0, apperrors.Validation(apperrors.CodeInvalidInput, "unknown challenge metric")
	}
}
