package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unyieldapp/unyield-server/internal/dto"
	"github.com/unyieldapp/unyield-server/internal/services"
)

type SubmissionHandler struct {
	submissions *services.SubmissionService
}

func NewSubmissionHandler(submissions *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

func (h *SubmissionHandler) SubmitVideo(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SubmitVideoRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	sub, err := h.submissions.SubmitVideo(c.Context(), services.NewVideoSubmission{
		UserID:          identity.UserID,
		WorkoutID:       req.WorkoutID,
		Exercise:        req.Exercise,
		Reps:            req.Reps,
		WeightKg:        req.WeightKg,
		DurationSeconds: req.DurationSeconds,
		VideoURL:        req.VideoURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sub)
}

func (h *SubmissionHandler) SubmitChallengeEntry(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SubmitChallengeEntryRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	sub, err := h.submissions.SubmitChallengeEntry(c.Context(), services.NewChallengeEntry{
		UserID:          identity.UserID,
		ChallengeID:     req.ChallengeID,
		Exercise:        req.Exercise,
		Reps:            req.Reps,
		WeightKg:        req.WeightKg,
		DurationSeconds: req.DurationSeconds,
		VideoURL:        req.VideoURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sub)
}
