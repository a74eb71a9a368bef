package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unyieldapp/unyield-server/internal/models"
	"github.com/unyieldapp/unyield-server/internal/notify"
	"github.com/unyieldapp/unyield-server/internal/repository"
)

// Function-field mocks of the store interfaces.

type mockVideoStore struct {
	createFunc           func(ctx context.Context, sub *models.VideoSubmission) error
	findByIDFunc         func(ctx context.Context, id uuid.UUID) (*models.VideoSubmission, error)
	transitionStatusFunc func(ctx context.Context, id uuid.UUID, from models.SubmissionStatus, updates map[string]interface{}) (bool, error)
	deleteFunc           func(ctx context.Context, id uuid.UUID) error
	listPendingFunc      func(ctx context.Context, filter repository.PendingFilter) ([]models.VideoSubmission, error)
	countPendingFunc     func(ctx context.Context) (int64, error)
}

func (m *mockVideoStore) Create(ctx context.Context, sub *models.VideoSubmission) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, sub)
	}
	return errors.New("not implemented")
}

func (m *mockVideoStore) FindByID(ctx context.Context, id uuid.UUID) (*models.VideoSubmission, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockVideoStore) TransitionStatus(ctx context.Context, id uuid.UUID, from models.SubmissionStatus, updates map[string]interface{}) (bool, error) {
	if m.transitionStatusFunc != nil {
		return m.transitionStatusFunc(ctx, id, from, updates)
	}
	return false, errors.New("not implemented")
}

func (m *mockVideoStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockVideoStore) ListPending(ctx context.Context, filter repository.PendingFilter) ([]models.VideoSubmission, error) {
	if m.listPendingFunc != nil {
		return m.listPendingFunc(ctx, filter)
	}
	return nil, errors.New("not implemented")
}

func (m *mockVideoStore) CountPending(ctx context.Context) (int64, error) {
	if m.countPendingFunc != nil {
		return m.countPendingFunc(ctx)
	}
	return 0, errors.New("not implemented")
}

type mockEntryStore struct {
	createFunc                  func(ctx context.Context, sub *models.ChallengeSubmission) error
	findByIDFunc                func(ctx context.Context, id uuid.UUID) (*models.ChallengeSubmission, error)
	transitionStatusFunc        func(ctx context.Context, id uuid.UUID, from models.SubmissionStatus, updates map[string]interface{}) (bool, error)
	deleteFunc                  func(ctx context.Context, id uuid.UUID) error
	listPendingFunc             func(ctx context.Context, filter repository.PendingFilter) ([]models.ChallengeSubmission, error)
	countPendingFunc            func(ctx context.Context) (int64, error)
	listApprovedFunc            func(ctx context.Context, userID, challengeID uuid.UUID) ([]models.ChallengeSubmission, error)
	listApprovedByChallengeFunc func(ctx context.Context, challengeID uuid.UUID) ([]models.ChallengeSubmission, error)
}

func (m *mockEntryStore) Create(ctx context.Context, sub *models.ChallengeSubmission) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, sub)
	}
	return errors.New("not implemented")
}

func (m *mockEntryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ChallengeSubmission, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockEntryStore) TransitionStatus(ctx context.Context, id uuid.UUID, from models.SubmissionStatus, updates map[string]interface{}) (bool, error) {
	if m.transitionStatusFunc != nil {
		return m.transitionStatusFunc(ctx, id, from, updates)
	}
	return false, errors.New("not implemented")
}

func (m *mockEntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockEntryStore) ListPending(ctx context.Context, filter repository.PendingFilter) ([]models.ChallengeSubmission, error) {
	if m.listPendingFunc != nil {
		return m.listPendingFunc(ctx, filter)
	}
	return nil, errors.New("not implemented")
}

func (m *mockEntryStore) CountPending(ctx context.Context) (int64, error) {
	if m.countPendingFunc != nil {
		return m.countPendingFunc(ctx)
	}
	return 0, errors.New("not implemented")
}

func (m *mockEntryStore) ListApproved(ctx context.Context, userID, challengeID uuid.UUID) ([]models.ChallengeSubmission, error) {
	if m.listApprovedFunc != nil {
		return m.listApprovedFunc(ctx, userID, challengeID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockEntryStore) ListApprovedByChallenge(ctx context.Context, challengeID uuid.UUID) ([]models.ChallengeSubmission, error) {
	if m.listApprovedByChallengeFunc != nil {
		return m.listApprovedByChallengeFunc(ctx, challengeID)
	}
	return nil, errors.New("not implemented")
}

type mockChallengeStore struct {
	createFunc     func(ctx context.Context, ch *models.Challenge) error
	findByIDFunc   func(ctx context.Context, id uuid.UUID) (*models.Challenge, error)
	listActiveFunc func(ctx context.Context, now time.Time) ([]models.Challenge, error)
}

func (m *mockChallengeStore) Create(ctx context.Context, ch *models.Challenge) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, ch)
	}
	return errors.New("not implemented")
}

func (m *mockChallengeStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockChallengeStore) ListActive(ctx context.Context, now time.Time) ([]models.Challenge, error) {
	if m.listActiveFunc != nil {
		return m.listActiveFunc(ctx, now)
	}
	return nil, errors.New("not implemented")
}

type mockUserStore struct {
	findByIDFunc  func(ctx context.Context, id uuid.UUID) (*models.User, error)
	addPointsFunc func(ctx context.Context, id uuid.UUID, points float64) error
}

func (m *mockUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserStore) AddPoints(ctx context.Context, id uuid.UUID, points float64) error {
	if m.addPointsFunc != nil {
		return m.addPointsFunc(ctx, id, points)
	}
	return errors.New("not implemented")
}

type mockAppealStore struct {
	createFunc           func(ctx context.Context, appeal *models.Appeal) error
	findByIDFunc         func(ctx context.Context, id uuid.UUID) (*models.Appeal, error)
	transitionStatusFunc func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error)
	listByStatusFunc     func(ctx context.Context, status models.AppealStatus, limit, offset int) ([]models.Appeal, int64, error)
}

func (m *mockAppealStore) Create(ctx context.Context, appeal *models.Appeal) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, appeal)
	}
	return errors.New("not implemented")
}

func (m *mockAppealStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Appeal, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppealStore) TransitionStatus(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error) {
	if m.transitionStatusFunc != nil {
		return m.transitionStatusFunc(ctx, id, updates)
	}
	return false, errors.New("not implemented")
}

func (m *mockAppealStore) ListByStatus(ctx context.Context, status models.AppealStatus, limit, offset int) ([]models.Appeal, int64, error) {
	if m.listByStatusFunc != nil {
		return m.listByStatusFunc(ctx, status, limit, offset)
	}
	return nil, 0, errors.New("not implemented")
}

type mockReportStore struct {
	createFunc           func(ctx context.Context, report *models.Report) error
	findByIDFunc         func(ctx context.Context, id uuid.UUID) (*models.Report, error)
	transitionStatusFunc func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error)
	listByStatusFunc     func(ctx context.Context, status models.ReportStatus, limit, offset int) ([]models.Report, int64, error)
}

func (m *mockReportStore) Create(ctx context.Context, report *models.Report) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, report)
	}
	return errors.New("not implemented")
}

func (m *mockReportStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReportStore) TransitionStatus(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error) {
	if m.transitionStatusFunc != nil {
		return m.transitionStatusFunc(ctx, id, updates)
	}
	return false, errors.New("not implemented")
}

func (m *mockReportStore) ListByStatus(ctx context.Context, status models.ReportStatus, limit, offset int) ([]models.Report, int64, error) {
	if m.listByStatusFunc != nil {
		return m.listByStatusFunc(ctx, status, limit, offset)
	}
	return nil, 0, errors.New("not implemented")
}

// mockAuditStore records appended actions in memory.
type mockAuditStore struct {
	mu      sync.Mutex
	actions []models.AdminAction
	err     error
}

func (m *mockAuditStore) Create(ctx context.Context, action *models.AdminAction) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, *action)
	return nil
}

func (m *mockAuditStore) List(ctx context.Context, targetType, targetID string, limit, offset int) ([]models.AdminAction, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.actions, int64(len(m.actions)), nil
}

func (m *mockAuditStore) last() *models.AdminAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.actions) == 0 {
		return nil
	}
	return &m.actions[len(m.actions)-1]
}

// mockDispatcher records dispatched notifications.
type mockDispatcher struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (m *mockDispatcher) Dispatch(n notify.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
}

// mockRankCache records leaderboard updates.
type mockRankCache struct {
	mu         sync.Mutex
	calls      int
	lastUserID uuid.UUID
	lastWeight float64
	lastPoints float64
}

func (m *mockRankCache) SetScore(userID uuid.UUID, bodyweightKg, totalPoints float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastUserID = userID
	m.lastWeight = bodyweightKg
	m.lastPoints = totalPoints
}

type mockEvaluator struct {
	evaluateFunc func(ctx context.Context, userID, challengeID uuid.UUID) (*CompletionStatus, error)
}

func (m *mockEvaluator) Evaluate(ctx context.Context, userID, challengeID uuid.UUID) (*CompletionStatus, error) {
	if m.evaluateFunc != nil {
		return m.evaluateFunc(ctx, userID, challengeID)
	}
	return &CompletionStatus{}, nil
}

type mockReinstater struct {
	reinstateFunc func(ctx context.Context, id, moderatorID uuid.UUID, moderatorName string) (*VerificationResult, error)
}

func (m *mockReinstater) ReinstateVideo(ctx context.Context, id, moderatorID uuid.UUID, moderatorName string) (*VerificationResult, error) {
	if m.reinstateFunc != nil {
		return m.reinstateFunc(ctx, id, moderatorID, moderatorName)
	}
	return nil, errors.New("not implemented")
}
