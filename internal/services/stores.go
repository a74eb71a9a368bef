package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/unyieldapp/unyield-server/internal/models"
	"github.com/unyieldapp/unyield-server/internal/notify"
	"github.com/unyieldapp/unyield-server/internal/repository"
)

// Consumer-side views of the repository layer. Services depend on these so
// the workflow logic is testable without a database.

type VideoSubmissionStore interface {
	Create(ctx context.Context, sub *models.VideoSubmission) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.VideoSubmission, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from models.SubmissionStatus, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListPending(ctx context.Context, filter repository.PendingFilter) ([]models.VideoSubmission, error)
	CountPending(ctx context.Context) (int64, error)
}

type ChallengeSubmissionStore interface {
	Create(ctx context.Context, sub *models.ChallengeSubmission) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ChallengeSubmission, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from models.SubmissionStatus, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListPending(ctx context.Context, filter repository.PendingFilter) ([]models.ChallengeSubmission, error)
	CountPending(ctx context.Context) (int64, error)
	ListApproved(ctx context.Context, userID, challengeID uuid.UUID) ([]models.ChallengeSubmission, error)
	ListApprovedByChallenge(ctx context.Context, challengeID uuid.UUID) ([]models.ChallengeSubmission, error)
}

type ChallengeStore interface {
	Create(ctx context.Context, ch *models.Challenge) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Challenge, error)
	ListActive(ctx context.Context, now time.Time) ([]models.Challenge, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	AddPoints(ctx context.Context, id uuid.UUID, points float64) error
}

type AppealStore interface {
	Create(ctx context.Context, appeal *models.Appeal) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Appeal, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error)
	ListByStatus(ctx context.Context, status models.AppealStatus, limit, offset int) ([]models.Appeal, int64, error)
}

type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error)
	ListByStatus(ctx context.Context, status models.ReportStatus, limit, offset int) ([]models.Report, int64, error)
}

type AuditStore interface {
	Create(ctx context.Context, action *models.AdminAction) error
	List(ctx context.Context, targetType, targetID string, limit, offset int) ([]models.AdminAction, int64, error)
}

// Dispatcher is the fire-and-forget notification sink.
type Dispatcher interface {
	Dispatch(n notify.Notification)
}

// RankCache is the best-effort leaderboard cache.
type RankCache interface {
	SetScore(userID uuid.UUID, bodyweightKg, totalPoints float64)
}
