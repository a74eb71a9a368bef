package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unyieldapp/unyield-server/internal/dto"
	"github.com/unyieldapp/unyield-server/internal/services"
)

type ModerationHandler struct {
	queue        *services.QueueService
	verification *services.VerificationService
	audit        *services.AuditService
}

func NewModerationHandler(queue *services.QueueService, verification *services.VerificationService, audit *services.AuditService) *ModerationHandler {
	return &ModerationHandler{queue: queue, verification: verification, audit: audit}
}

func (h *ModerationHandler) ListQueue(c *fiber.Ctx) error {
	source := c.Query("source", "all")
	dateRange := c.Query("date_range", "all")
	exercise := c.Query("exercise", "")

	items, err := h.queue.ListPending(c.Context(), source, dateRange, exercise)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"items": items,
		"total": len(items),
	})
}

func (h *ModerationHandler) QueueCounts(c *fiber.Ctx) error {
	counts, err := h.queue.PendingCounts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(counts)
}

func (h *ModerationHandler) ApproveVideo(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "Invalid submission ID")
	}

	// The body is optional; an empty approve means "use the estimate".
	var req dto.ApproveSubmissionRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return respondError(c, err)
		}
	}

	result, err := h.verification.ApproveVideo(c.Context(), id, identity.UserID, identity.Name, req.PointsOverride)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *ModerationHandler) RejectVideo(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "Invalid submission ID")
	}

	var req dto.RejectSubmissionRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	result, err := h.verification.RejectVideo(c.Context(), id, identity.UserID, identity.Name, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *ModerationHandler) ApproveChallengeEntry(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "Invalid submission ID")
	}

	result, err := h.verification.ApproveChallengeEntry(c.Context(), id, identity.UserID, identity.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *ModerationHandler) RejectChallengeEntry(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "Invalid submission ID")
	}

	var req dto.RejectSubmissionRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	result, err := h.verification.RejectChallengeEntry(c.Context(), id, identity.UserID, identity.Name, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *ModerationHandler) RemoveVideo(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "Invalid submission ID")
	}

	var req dto.RemoveVideoRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.verification.RemoveVideo(c.Context(), id, identity.UserID, identity.Name, req.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Video removed"})
}

func (h *ModerationHandler) AuditHistory(c *fiber.Ctx) error {
	limit, offset := paging(c)
	targetType := c.Query("target_type", "")
	targetID := c.Query("target_id", "")

	actions, total, err := h.audit.History(c.Context(), targetType, targetID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"actions": actions,
		"meta":    dto.ListMeta{Total: total, Limit: limit, Offset: offset},
	})
}
