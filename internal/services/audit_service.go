package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/unyieldapp/unyield-server/internal/models"
)

// AuditService is the append-only sink for moderator activity. Entries are
// never updated or deleted; the only failure mode is storage unavailability,
// which is surfaced to the caller.
type AuditService struct {
	store AuditStore
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store}
}

func (s *AuditService) Record(ctx context.Context, adminID uuid.UUID, adminName, action, targetType, targetID string, details map[string]interface{}) error {
	entry := &models.AdminAction{
		ID:         uuid.New(),
		AdminID:    adminID,
		AdminName:  adminName,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
	}
	if len(details) > 0 {
		if b, err := json.Marshal(details); err == nil {
			entry.Details = datatypes.JSON(b)
		}
	}

	if err := s.store.Create(ctx, entry); err != nil {
		slog.Error("audit record failed", "action", action, "target_id", targetID, "error", err)
		return err
	}
	return nil
}

// History returns paged audit entries for UI display, newest first.
func (s *AuditService) History(ctx context.Context, targetType, targetID string, limit, offset int) ([]models.AdminAction, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, targetType, targetID, limit, offset)
}
