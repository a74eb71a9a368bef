// Package leaderboard maintains the weight-class-segmented rank cache in
// Redis sorted sets. The cache is best effort: the durable point totals on
// the user row stay authoritative, and a cache failure never fails a
// verification transition.
package leaderboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/unyieldapp/unyield-server/internal/scoring"
)

const keyPrefix = "unyield:leaderboard:"

type Entry struct {
	UserID uuid.UUID `json:"user_id"`
	Rank   int       `json:"rank"`
	Points float64   `json:"points"`
}

type Cache struct {
	client *redis.Client
}

// NewCache returns a cache; a nil client yields a no-op cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func classKey(class scoring.WeightClassID) string {
	return keyPrefix + string(class)
}

// SetScore writes the user's total into their weight-class set.
// Unclassified bodyweights are not ranked.
func (c *Cache) SetScore(userID uuid.UUID, bodyweightKg, totalPoints float64) {
	if c == nil || c.client == nil {
		return
	}
	class := scoring.WeightClass(bodyweightKg)
	if class == scoring.Unclassified {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		err := c.client.ZAdd(ctx, classKey(class), redis.Z{
			Score:  totalPoints,
			Member: userID.String(),
		}).Err()
		if err != nil {
			slog.Warn("leaderboard cache update failed", "user_id", userID, "class", class, "error", err)
		}
	}()
}

// Top returns the highest-ranked entries for a weight class.
func (c *Cache) Top(ctx context.Context, class scoring.WeightClassID, limit int) ([]Entry, error) {
	if c == nil || c.client == nil || class == scoring.Unclassified {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	zs, err := c.client.ZRevRangeWithScores(ctx, classKey(class), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(zs))
	for i, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{UserID: id, Rank: i + 1, Points: z.Score})
	}
	return entries, nil
}
