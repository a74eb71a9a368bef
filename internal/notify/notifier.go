// Package notify decouples verification transitions from the external push
// pipeline: dispatches are queued onto a Redis list and consumed elsewhere,
// so a slow push provider can never block a moderator action.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const queueKey = "unyield:notifications"

type Notification struct {
	UserID  uuid.UUID `json:"userId"`
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
}

type Dispatcher struct {
	client *redis.Client
}

// NewDispatcher returns a dispatcher; a nil client yields a no-op dispatcher
// so local setups without Redis still work.
func NewDispatcher(client *redis.Client) *Dispatcher {
	return &Dispatcher{client: client}
}

// Dispatch enqueues fire-and-forget. Failures are logged, never returned:
// notification delivery must not affect the outcome of a verification.
func (d *Dispatcher) Dispatch(n Notification) {
	if d == nil || d.client == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		payload, err := json.Marshal(n)
		if err != nil {
			slog.Error("notification marshal failed", "error", err)
			return
		}
		if err := d.client.LPush(ctx, queueKey, payload).Err(); err != nil {
			slog.Warn("notification enqueue failed", "user_id", n.UserID, "type", n.Type, "error", err)
		}
	}()
}
