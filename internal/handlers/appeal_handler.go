package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unyieldapp/unyield-server/internal/dto"
	"github.com/unyieldapp/unyield-server/internal/models"
	"github.com/unyieldapp/unyield-server/internal/services"
)

type AppealHandler struct {
	appeals *services.AppealService
}

func NewAppealHandler(appeals *services.AppealService) *AppealHandler {
	return &AppealHandler{appeals: appeals}
}

func (h *AppealHandler) Create(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateAppealRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	appeal, err := h.appeals.Create(c.Context(), identity.UserID, req.VideoSubmissionID, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(appeal)
}

func (h *AppealHandler) List(c *fiber.Ctx) error {
	limit, offset := paging(c)
	status := models.AppealStatus(c.Query("status", string(models.AppealPending)))

	appeals, total, err := h.appeals.List(c.Context(), status, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"appeals": appeals,
		"meta":    dto.ListMeta{Total: total, Limit: limit, Offset: offset},
	})
}

func (h *AppealHandler) Review(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "Invalid appeal ID")
	}

	var req dto.ReviewAppealRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	appeal, err := h.appeals.Review(c.Context(), id, identity.UserID, identity.Name, req.Action, req.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appeal)
}
