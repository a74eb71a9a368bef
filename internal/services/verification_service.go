package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/metrics"
	"github.com/unyieldapp/unyield-server/internal/models"
	"github.com/unyieldapp/unyield-server/internal/notify"
	"github.com/unyieldapp/unyield-server/internal/scoring"
)

// Evaluator re-computes challenge progress after an approval.
type Evaluator interface {
	Evaluate(ctx context.Context, userID, challengeID uuid.UUID) (*CompletionStatus, error)
}

// VerificationResult is what the boundary returns after a moderator action.
type VerificationResult struct {
	ID            uuid.UUID               `json:"id"`
	Source        models.SubmissionSource `json:"source"`
	Status        models.SubmissionStatus `json:"status"`
	PointsAwarded *float64                `json:"points_awarded,omitempty"`
	// Deleted marks the orphan cleanup branch: the submission referenced a
	// user or challenge that no longer exists and was removed instead of
	// transitioned.
	Deleted    bool              `json:"deleted,omitempty"`
	Completion *CompletionStatus `json:"completion,omitempty"`
}

// VerificationService enforces the submission state machine: pending ->
// approved/rejected, one shot. The transition out of pending is a
// compare-and-set at the storage layer, so of two concurrent moderator
// actions exactly one wins and the other observes AlreadyReviewed.
type VerificationService struct {
	videos     VideoSubmissionStore
	entries    ChallengeSubmissionStore
	challenges ChallengeStore
	users      UserStore
	audit      *AuditService
	evaluator  Evaluator
	notifier   Dispatcher
	board      RankCache
	now        func() time.Time
}

func NewVerificationService(
	videos VideoSubmissionStore,
	entries ChallengeSubmissionStore,
	challenges ChallengeStore,
	users UserStore,
	audit *AuditService,
	evaluator Evaluator,
	notifier Dispatcher,
	board RankCache,
) *VerificationService {
	return &VerificationService{
		videos:     videos,
		entries:    entries,
		challenges: challenges,
		users:      users,
		audit:      audit,
		evaluator:  evaluator,
		notifier:   notifier,
		board:      board,
		now:        time.Now,
	}
}

func errAlreadyReviewed() error {
	return apperrors.Conflict(apperrors.CodeAlreadyReviewed, "submission has already been reviewed")
}

// ApproveVideo transitions a video submission pending -> approved and awards
// points: the moderator override when given, otherwise the approval estimate.
func (s *VerificationService) ApproveVideo(ctx context.Context, id, moderatorID uuid.UUID, moderatorName string, pointsOverride *float64) (*VerificationResult, error) {
	sub, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.StatusPending {
		return nil, errAlreadyReviewed()
	}

	user, err := s.users.FindByID(ctx, sub.UserID)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return s.cleanupOrphanVideo(ctx, sub, moderatorID, moderatorName, "approve_video")
	}
	if err != nil {
		return nil, err
	}

	points := scoring.ApprovalEstimate(sub.Reps, sub.WeightKg)
	if pointsOverride != nil {
		points = *pointsOverride
	}

	now := s.now()
	won, err := s.videos.TransitionStatus(ctx, id, models.StatusPending, map[string]interface{}{
		"status":         models.StatusApproved,
		"verified_by":    moderatorID,
		"verified_at":    now,
		"points_awarded": points,
	})
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, errAlreadyReviewed()
	}

	if err := s.users.AddPoints(ctx, user.ID, points); err != nil {
		slog.Error("point award failed after approval", "submission_id", id, "user_id", user.ID, "error", err)
		return nil, err
	}
	s.board.SetScore(user.ID, user.BodyweightKg, user.TotalPoints+points)
	s.notifier.Dispatch(notify.Notification{
		UserID:  user.ID,
		Type:    "submission_approved",
		Title:   "Submission approved",
		Message: fmt.Sprintf("Your %s video was approved for %.1f points.", sub.Exercise, points),
	})
	metrics.ModerationDecisions.WithLabelValues(string(models.SourceWorkout), "approve", "ok").Inc()

	if err := s.audit.Record(ctx, moderatorID, moderatorName, "approve_video", "video_submission", id.String(), map[string]interface{}{
		"points_awarded": points,
		"override":       pointsOverride != nil,
	}); err != nil {
		return nil, err
	}

	return &VerificationResult{
		ID:            id,
		Source:        models.SourceWorkout,
		Status:        models.StatusApproved,
		PointsAwarded: &points,
	}, nil
}

// RejectVideo transitions a video submission pending -> rejected. A reason
// is mandatory; points stay unset.
func (s *VerificationService) RejectVideo(ctx context.Context, id, moderatorID uuid.UUID, moderatorName, reason string) (*VerificationResult, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.Validation(apperrors.CodeMissingReason, "rejection reason is required")
	}

	sub, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.StatusPending {
		return nil, errAlreadyReviewed()
	}

	user, err := s.users.FindByID(ctx, sub.UserID)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return s.cleanupOrphanVideo(ctx, sub, moderatorID, moderatorName, "reject_video")
	}
	if err != nil {
		return nil, err
	}

	won, err := s.videos.TransitionStatus(ctx, id, models.StatusPending, map[string]interface{}{
		"status":           models.StatusRejected,
		"verified_by":      moderatorID,
		"verified_at":      s.now(),
		"rejection_reason": reason,
	})
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, errAlreadyReviewed()
	}

	s.notifier.Dispatch(notify.Notification{
		UserID:  user.ID,
		Type:    "submission_rejected",
		Title:   "Submission rejected",
		Message: fmt.Sprintf("Your %s video was rejected: %s", sub.Exercise, reason),
	})
	metrics.ModerationDecisions.WithLabelValues(string(models.SourceWorkout), "reject", "ok").Inc()

	if err := s.audit.Record(ctx, moderatorID, moderatorName, "reject_video", "video_submission", id.String(), map[string]interface{}{
		"reason": reason,
	}); err != nil {
		return nil, err
	}

	return &VerificationResult{ID: id, Source: models.SourceWorkout, Status: models.StatusRejected}, nil
}

// ApproveChallengeEntry transitions a challenge submission pending ->
// approved and synchronously re-evaluates the user's challenge progress.
func (s *VerificationService) ApproveChallengeEntry(ctx context.Context, id, moderatorID uuid.UUID, moderatorName string) (*VerificationResult, error) {
	sub, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.StatusPending {
		return nil, errAlreadyReviewed()
	}

	challenge, err := s.challenges.FindByID(ctx, sub.ChallengeID)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return s.cleanupOrphanEntry(ctx, sub, moderatorID, moderatorName, "approve_challenge_entry", "challenge deleted")
	}
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, sub.UserID)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return s.cleanupOrphanEntry(ctx, sub, moderatorID, moderatorName, "approve_challenge_entry", "user deleted")
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	// Late submissions into an ended challenge are refused; entries recorded
	// before the deadline may still be verified afterwards.
	if challenge.Ended(now) && sub.SubmittedAt.After(challenge.EndDate) {
		return nil, apperrors.Conflict(apperrors.CodeChallengeEnded, "challenge has ended")
	}

	won, err := s.entries.TransitionStatus(ctx, id, models.StatusPending, map[string]interface{}{
		"status":      models.StatusApproved,
		"verified_by": moderatorID,
		"verified_at": now,
	})
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, errAlreadyReviewed()
	}

	completion, err := s.evaluator.Evaluate(ctx, sub.UserID, sub.ChallengeID)
	if err != nil {
		slog.Error("completion evaluation failed after approval", "submission_id", id, "challenge_id", sub.ChallengeID, "error", err)
		return nil, err
	}
	if completion.IsComplete {
		metrics.ChallengeCompletions.Inc()
		s.notifier.Dispatch(notify.Notification{
			UserID:  user.ID,
			Type:    "challenge_complete",
			Title:   "Challenge complete",
			Message: fmt.Sprintf("You completed %q with %.1f.", challenge.Title, completion.Value),
		})
	} else {
		s.notifier.Dispatch(notify.Notification{
			UserID:  user.ID,
			Type:    "entry_approved",
			Title:   "Challenge entry approved",
			Message: fmt.Sprintf("Entry approved. Progress: %.1f of %.1f.", completion.Value, challenge.Target),
		})
	}
	metrics.ModerationDecisions.WithLabelValues(string(models.SourceChallenge), "approve", "ok").Inc()

	if err := s.audit.Record(ctx, moderatorID, moderatorName, "approve_challenge_entry", "challenge_submission", id.String(), map[string]interface{}{
		"challenge_id": sub.ChallengeID.String(),
		"value":        sub.Value,
		"complete":     completion.IsComplete,
	}); err != nil {
		return nil, err
	}

	return &VerificationResult{
		ID:         id,
		Source:     models.SourceChallenge,
		Status:     models.StatusApproved,
		Completion: completion,
	}, nil
}

// RejectChallengeEntry mirrors RejectVideo for challenge submissions.
func (s *VerificationService) RejectChallengeEntry(ctx context.Context, id, moderatorID uuid.UUID, moderatorName, reason string) (*VerificationResult, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.Validation(apperrors.CodeMissingReason, "rejection reason is required")
	}

	sub, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.StatusPending {
		return nil, errAlreadyReviewed()
	}

	if _, err := s.challenges.FindByID(ctx, sub.ChallengeID); apperrors.IsKind(err, apperrors.KindNotFound) {
		return s.cleanupOrphanEntry(ctx, sub, moderatorID, moderatorName, "reject_challenge_entry", "challenge deleted")
	} else if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, sub.UserID)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return s.cleanupOrphanEntry(ctx, sub, moderatorID, moderatorName, "reject_challenge_entry", "user deleted")
	}
	if err != nil {
		return nil, err
	}

	won, err := s.entries.TransitionStatus(ctx, id, models.StatusPending, map[string]interface{}{
		"status":           models.StatusRejected,
		"verified_by":      moderatorID,
		"verified_at":      s.now(),
		"rejection_reason": reason,
	})
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, errAlreadyReviewed()
	}

	s.notifier.Dispatch(notify.Notification{
		UserID:  user.ID,
		Type:    "entry_rejected",
		Title:   "Challenge entry rejected",
		Message: "Your challenge entry was rejected: " + reason,
	})
	metrics.ModerationDecisions.WithLabelValues(string(models.SourceChallenge), "reject", "ok").Inc()

	if err := s.audit.Record(ctx, moderatorID, moderatorName, "reject_challenge_entry", "challenge_submission", id.String(), map[string]interface{}{
		"reason": reason,
	}); err != nil {
		return nil, err
	}

	return &VerificationResult{ID: id, Source: models.SourceChallenge, Status: models.StatusRejected}, nil
}

// ReinstateVideo drives rejected -> approved on behalf of an approved
// appeal. Points re-enter through the approval estimate (appeals carry no
// override).
func (s *VerificationService) ReinstateVideo(ctx context.Context, id, moderatorID uuid.UUID, moderatorName string) (*VerificationResult, error) {
	sub, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.StatusRejected {
		return nil, apperrors.Conflict(apperrors.CodeAlreadyReviewed, "submission is not rejected")
	}

	user, err := s.users.FindByID(ctx, sub.UserID)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return s.cleanupOrphanVideo(ctx, sub, moderatorID, moderatorName, "reinstate_video")
	}
	if err != nil {
		return nil, err
	}

	points := scoring.ApprovalEstimate(sub.Reps, sub.WeightKg)
	won, err := s.videos.TransitionStatus(ctx, id, models.StatusRejected, map[string]interface{}{
		"status":           models.StatusApproved,
		"verified_by":      moderatorID,
		"verified_at":      s.now(),
		"points_awarded":   points,
		"rejection_reason": "",
	})
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, errAlreadyReviewed()
	}

	if err := s.users.AddPoints(ctx, user.ID, points); err != nil {
		slog.Error("point award failed after reinstatement", "submission_id", id, "user_id", user.ID, "error", err)
		return nil, err
	}
	s.board.SetScore(user.ID, user.BodyweightKg, user.TotalPoints+points)
	s.notifier.Dispatch(notify.Notification{
		UserID:  user.ID,
		Type:    "appeal_approved",
		Title:   "Appeal approved",
		Message: fmt.Sprintf("Your %s video was reinstated for %.1f points.", sub.Exercise, points),
	})

	return &VerificationResult{
		ID:            id,
		Source:        models.SourceWorkout,
		Status:        models.StatusApproved,
		PointsAwarded: &points,
	}, nil
}

// RemoveVideo applies the explicit removal instruction (the video_removed
// report action). Awarded points are clawed back so aggregates stay honest.
func (s *VerificationService) RemoveVideo(ctx context.Context, id, moderatorID uuid.UUID, moderatorName, reason string) error {
	sub, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if sub.Status == models.StatusApproved && sub.PointsAwarded != nil && *sub.PointsAwarded > 0 {
		user, err := s.users.FindByID(ctx, sub.UserID)
		if err != nil && !apperrors.IsKind(err, apperrors.KindNotFound) {
			return err
		}
		if err := s.users.AddPoints(ctx, sub.UserID, -*sub.PointsAwarded); err != nil && !apperrors.IsKind(err, apperrors.KindNotFound) {
			return err
		}
		// The cached rank must follow the clawback or the board shows the
		// removed points until the next approval for this user.
		if user != nil {
			s.board.SetScore(user.ID, user.BodyweightKg, user.TotalPoints-*sub.PointsAwarded)
		}
	}
	if err := s.videos.Delete(ctx, id); err != nil {
		return err
	}

	return s.audit.Record(ctx, moderatorID, moderatorName, "video_removed", "video_submission", id.String(), map[string]interface{}{
		"reason": reason,
	})
}

// cleanupOrphanVideo deletes a submission whose owner is gone and records
// the deletion. The caller's operation still reads as a success.
func (s *VerificationService) cleanupOrphanVideo(ctx context.Context, sub *models.VideoSubmission, moderatorID uuid.UUID, moderatorName, action string) (*VerificationResult, error) {
	slog.Warn("orphan video submission, deleting", "submission_id", sub.ID, "user_id", sub.UserID)
	if err := s.videos.Delete(ctx, sub.ID); err != nil {
		return nil, err
	}
	metrics.ModerationDecisions.WithLabelValues(string(models.SourceWorkout), action, "orphan_deleted").Inc()
	if err := s.audit.Record(ctx, moderatorID, moderatorName, action, "video_submission", sub.ID.String(), map[string]interface{}{
		"deleted": true,
		"cause":   "user deleted",
	}); err != nil {
		return nil, err
	}
	return &VerificationResult{ID: sub.ID, Source: models.SourceWorkout, Status: sub.Status, Deleted: true}, nil
}

func (s *VerificationService) cleanupOrphanEntry(ctx context.Context, sub *models.ChallengeSubmission, moderatorID uuid.UUID, moderatorName, action, cause string) (*VerificationResult, error) {
	slog.Warn("orphan challenge submission, deleting", "submission_id", sub.ID, "challenge_id", sub.ChallengeID, "cause", cause)
	if err := s.entries.Delete(ctx, sub.ID); err != nil {
		return nil, err
	}
	metrics.ModerationDecisions.WithLabelValues(string(models.SourceChallenge), action, "orphan_deleted").Inc()
	if err := s.audit.Record(ctx, moderatorID, moderatorName, action, "challenge_submission", sub.ID.String(), map[string]interface{}{
		"deleted": true,
		"cause":   cause,
	}); err != nil {
		return nil, err
	}
	return &VerificationResult{ID: sub.ID, Source: models.SourceChallenge, Status: sub.Status, Deleted: true}, nil
}
