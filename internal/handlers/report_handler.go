package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unyieldapp/unyield-server/internal/dto"
	"github.com/unyieldapp/unyield-server/internal/models"
	"github.com/unyieldapp/unyield-server/internal/services"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateReportRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	report, err := h.reports.Create(c.Context(), identity.UserID, req.VideoSubmissionID, models.ReportType(req.ReportType), req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	limit, offset := paging(c)
	status := models.ReportStatus(c.Query("status", string(models.ReportPending)))

	reports, total, err := h.reports.List(c.Context(), status, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"reports": reports,
		"meta":    dto.ListMeta{Total: total, Limit: limit, Offset: offset},
	})
}

func (h *ReportHandler) Review(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.ReviewReportRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	report, err := h.reports.Review(c.Context(), id, identity.UserID, identity.Name, req.Action, req.Notes, models.ReportAction(req.ActionTaken))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
