package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/metrics"
	"github.com/unyieldapp/unyield-server/internal/models"
	"github.com/unyieldapp/unyield-server/internal/repository"
)

// Source and date filters accepted by the moderation queue.
const (
	SourceFilterAll       = "all"
	SourceFilterWorkout   = "workout"
	SourceFilterChallenge = "challenge"

	DateFilterAll      = "all"
	DateFilterToday    = "today"
	DateFilterThisWeek = "this_week"
)

// QueueItem is the denormalized merged view of one pending submission. The
// Source tag lets the caller dispatch approve/reject to the right entity
// without a second lookup.
type QueueItem struct {
	ID              uuid.UUID               `json:"id"`
	Source          models.SubmissionSource `json:"source"`
	UserID          uuid.UUID               `json:"user_id"`
	ChallengeID     *uuid.UUID              `json:"challenge_id,omitempty"`
	Exercise        string                  `json:"exercise"`
	Reps            int                     `json:"reps"`
	WeightKg        float64                 `json:"weight_kg"`
	DurationSeconds int                     `json:"duration_seconds"`
	Value           float64                 `json:"value,omitempty"`
	VideoURL        string                  `json:"video_url,omitempty"`
	SubmittedAt     time.Time               `json:"submitted_at"`
}

// QueueService is a read-only projection over the pending sets of both
// submission tables. It recomputes on every call; moderator actions
// elsewhere continuously shrink the pending set, so nothing is cached.
type QueueService struct {
	videos  VideoSubmissionStore
	entries ChallengeSubmissionStore
	now     func() time.Time
}

func NewQueueService(videos VideoSubmissionStore, entries ChallengeSubmissionStore) *QueueService {
	return &QueueService{videos: videos, entries: entries, now: time.Now}
}

// ListPending merges pending submissions from both sources, oldest first.
func (s *QueueService) ListPending(ctx context.Context, source, dateRange, exercise string) ([]QueueItem, error) {
	since, err := s.sinceFor(dateRange)
	if err != nil {
		return nil, err
	}
	filter := repository.PendingFilter{Since: since, ExerciseContains: exercise}

	if source == "" {
		source = SourceFilterAll
	}
	if source != SourceFilterAll && source != SourceFilterWorkout && source != SourceFilterChallenge {
		return nil, apperrors.Validation(apperrors.CodeInvalidInput, "source must be all, workout or challenge")
	}

	items := make([]QueueItem, 0, 64)

	if source == SourceFilterAll || source == SourceFilterWorkout {
		videos, err := s.videos.ListPending(ctx, filter)
		if err != nil {
			return nil, err
		}
		for i := range videos {
			items = append(items, videoQueueItem(&videos[i]))
		}
		metrics.QueueDepth.WithLabelValues(string(models.SourceWorkout)).Set(float64(len(videos)))
	}

	if source == SourceFilterAll || source == SourceFilterChallenge {
		entries, err := s.entries.ListPending(ctx, filter)
		if err != nil {
			return nil, err
		}
		for i := range entries {
			items = append(items, entryQueueItem(&entries[i]))
		}
		metrics.QueueDepth.WithLabelValues(string(models.SourceChallenge)).Set(float64(len(entries)))
	}

	// FIFO fairness across both sources.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SubmittedAt.Before(items[j].SubmittedAt)
	})
	return items, nil
}

// PendingCounts reports queue depth per source for the admin dashboard.
func (s *QueueService) PendingCounts(ctx context.Context) (map[string]int64, error) {
	videoCount, err := s.videos.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	entryCount, err := s.entries.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]int64{
		string(models.SourceWorkout):   videoCount,
		string(models.SourceChallenge): entryCount,
	}, nil
}

// sinceFor converts a date filter into a lower bound computed from local
// midnight. Weeks start on Monday.
func (s *QueueService) sinceFor(dateRange string) (*time.Time, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch dateRange {
	case DateFilterAll, "":
		return nil, nil
	case DateFilterToday:
		return &midnight, nil
	case DateFilterThisWeek:
		offset := (int(now.Weekday()) + 6) % 7
		weekStart := midnight.AddDate(0, 0, -offset)
		return &weekStart, nil
	default:
		return nil, apperrors.Validation(apperrors.CodeInvalidInput, "date range must be all, today or this_week")
	}
}

func videoQueueItem(sub *models.VideoSubmission) QueueItem {
	return QueueItem{
		ID:              sub.ID,
		Source:          models.SourceWorkout,
		UserID:          sub.UserID,
		Exercise:        sub.Exercise,
		Reps:            sub.Reps,
		WeightKg:        sub.WeightKg,
		DurationSeconds: sub.DurationSeconds,
		VideoURL:        sub.VideoURL,
		SubmittedAt:     sub.SubmittedAt,
	}
}

func entryQueueItem(sub *models.ChallengeSubmission) QueueItem {
	challengeID := sub.ChallengeID
	return QueueItem{
		ID:              sub.ID,
		Source:          models.SourceChallenge,
		UserID:          sub.UserID,
		ChallengeID:     &challengeID,
		Exercise:        sub.Exercise,
		Reps:            sub.Reps,
		WeightKg:        sub.WeightKg,
		DurationSeconds: sub.DurationSeconds,
		Value:           sub.Value,
		VideoURL:        sub.VideoURL,
		SubmittedAt:     sub.SubmittedAt,
	}
}
