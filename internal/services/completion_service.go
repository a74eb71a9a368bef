package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unyieldapp/unyield-server/internal/models"
)

// CompletionStatus is the evaluator's answer for one (user, challenge) pair.
type CompletionStatus struct {
	Value       float64    `json:"value"`
	IsComplete  bool       `json:"is_complete"`
	Rank        int        `json:"rank,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// WinnerResult identifies the current winner of a challenge.
type WinnerResult struct {
	UserID      uuid.UUID  `json:"user_id"`
	Value       float64    `json:"value"`
	IsComplete  bool       `json:"is_complete"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CompletionService computes progress and completion from the approved
// submission set. It holds no aggregate state of its own, so a second
// evaluation over the same approved set always yields the same answer.
// Evaluations for one (user, challenge) pair are serialized so concurrent
// approvals cannot interleave their read-compute-notify sequences.
type CompletionService struct {
	entries    ChallengeSubmissionStore
	challenges ChallengeStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCompletionService(entries ChallengeSubmissionStore, challenges ChallengeStore) *CompletionService {
	return &CompletionService{
		entries:    entries,
		challenges: challenges,
		locks:      make(map[string]*sync.Mutex),
	}
}

func (s *CompletionService) pairLock(userID, challengeID uuid.UUID) *sync.Mutex {
	key := userID.String() + "/" + challengeID.String()
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[key] = l
	return l
}

// Evaluate computes the user's current value, completion and rank for a
// challenge. Ended challenges still evaluate for historical display.
func (s *CompletionService) Evaluate(ctx context.Context, userID, challengeID uuid.UUID) (*CompletionStatus, error) {
	l := s.pairLock(userID, challengeID)
	l.Lock()
	defer l.Unlock()

	challenge, err := s.challenges.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	subs, err := s.entries.ListApproved(ctx, userID, challengeID)
	if err != nil {
		return nil, err
	}

	status := progressFor(challenge, subs)

	// Rank by value among all participants with approved entries.
	all, err := s.entries.ListApprovedByChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	status.Rank = rankOf(challenge, all, userID)

	return status, nil
}

// DetermineWinner applies the challenge's winner criteria across all
// participants with approved entries. Returns nil when nobody qualifies.
func (s *CompletionService) DetermineWinner(ctx context.Context, challengeID uuid.UUID) (*WinnerResult, error) {
	challenge, err := s.challenges.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	all, err := s.entries.ListApprovedByChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	standings := standingsFor(challenge, all)
	if len(standings) == 0 {
		return nil, nil
	}

	switch challenge.WinnerCriteria {
	case models.WinnerFirstToComplete:
		var winner *WinnerResult
		for i := range standings {
			c := &standings[i]
			if !c.IsComplete || c.CompletedAt == nil {
				continue
			}
			if winner == nil || c.CompletedAt.Before(*winner.CompletedAt) {
				winner = c
			}
		}
		return winner, nil

	default: // highest_value and value-ranked criteria
		candidates := standings
		completed := make([]WinnerResult, 0, len(standings))
		for _, c := range standings {
			if c.IsComplete {
				completed = append(completed, c)
			}
		}
		if len(completed) > 0 {
			candidates = completed
		}
		winner := candidates[0]
		for _, c := range candidates[1:] {
			if c.Value > winner.Value {
				winner = c
				continue
			}
			if c.Value == winner.Value && earlier(c.CompletedAt, winner.CompletedAt) {
				winner = c
			}
		}
		return &winner, nil
	}
}

// progressFor applies the completion policy to a user's approved entries.
// Entries arrive ordered by verified_at ascending.
func progressFor(challenge *models.Challenge, subs []models.ChallengeSubmission) *CompletionStatus {
	status := &CompletionStatus{}

	switch challenge.CompletionType {
	case models.CompletionCumulative:
		var sum float64
		for i := range subs {
			sum += subs[i].Value
			if status.CompletedAt == nil && sum >= challenge.Target {
				status.CompletedAt = subs[i].VerifiedAt
			}
		}
		status.Value = sum

	default:
		// single_session and best_effort both take the best single recorded
		// attempt; they differ only in how the completion moment is pinned.
		// The completion-triggering submission is the earliest-verified one
		// that meets the target on its own.
		var best float64
		for i := range subs {
			if subs[i].Value > best {
				best = subs[i].Value
			}
			if status.CompletedAt == nil && subs[i].Value >= challenge.Target {
				status.CompletedAt = subs[i].VerifiedAt
			}
		}
		status.Value = best
	}

	status.IsComplete = status.Value >= challenge.Target
	if !status.IsComplete {
		status.CompletedAt = nil
	}
	return status
}

// standingsFor groups a challenge's approved entries per user and evaluates
// each group under the challenge's policy.
func standingsFor(challenge *models.Challenge, all []models.ChallengeSubmission) []WinnerResult {
	byUser := make(map[uuid.UUID][]models.ChallengeSubmission)
	order := make([]uuid.UUID, 0)
	for _, sub := range all {
		if _, seen := byUser[sub.UserID]; !seen {
			order = append(order, sub.UserID)
		}
		byUser[sub.UserID] = append(byUser[sub.UserID], sub)
	}

	standings := make([]WinnerResult, 0, len(order))
	for _, userID := range order {
		p := progressFor(challenge, byUser[userID])
		standings = append(standings, WinnerResult{
			UserID:      userID,
			Value:       p.Value,
			IsComplete:  p.IsComplete,
			CompletedAt: p.CompletedAt,
		})
	}
	return standings
}

func rankOf(challenge *models.Challenge, all []models.ChallengeSubmission, userID uuid.UUID) int {
	standings := standingsFor(challenge, all)
	if len(standings) == 0 {
		return 0
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Value > standings[j].Value
	})
	for i, c := range standings {
		if c.UserID == userID {
			return i + 1
		}
	}
	// User has no approved entries yet; they trail everyone who does.
	return len(standings) + 1
}

func earlier(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}
