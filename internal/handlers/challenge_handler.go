package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/unyieldapp/unyield-server/internal/dto"
	"github.com/unyieldapp/unyield-server/internal/leaderboard"
	"github.com/unyieldapp/unyield-server/internal/models"
	"github.com/unyieldapp/unyield-server/internal/scoring"
	"github.com/unyieldapp/unyield-server/internal/services"
)

type ChallengeHandler struct {
	challenges services.ChallengeStore
	completion *services.CompletionService
	audit      *services.AuditService
	board      *leaderboard.Cache
}

func NewChallengeHandler(challenges services.ChallengeStore, completion *services.CompletionService, audit *services.AuditService, board *leaderboard.Cache) *ChallengeHandler {
	return &ChallengeHandler{challenges: challenges, completion: completion, audit: audit, board: board}
}

func (h *ChallengeHandler) Create(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateChallengeRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	challenge := &models.Challenge{
		ID:              uuid.New(),
		Title:           req.Title,
		Description:     req.Description,
		ChallengeType:   models.ChallengeTypeExercise,
		MetricType:      models.MetricType(req.MetricType),
		Exercise:        req.Exercise,
		Target:          req.Target,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		RegionScope:     req.RegionScope,
		Reward:          req.Reward,
		CompletionType:  models.CompletionCumulative,
		WinnerCriteria:  models.WinnerFirstToComplete,
		RequiresVideo:   true,
		MaxParticipants: req.MaxParticipants,
		IsActive:        true,
	}
	if req.ChallengeType != "" {
		challenge.ChallengeType = models.ChallengeType(req.ChallengeType)
	}
	if req.CompletionType != "" {
		challenge.CompletionType = models.CompletionType(req.CompletionType)
	}
	if req.WinnerCriteria != "" {
		challenge.WinnerCriteria = models.WinnerCriteria(req.WinnerCriteria)
	}
	if req.RegionScope == "" {
		challenge.RegionScope = "global"
	}
	if req.RequiresVideo != nil {
		challenge.RequiresVideo = *req.RequiresVideo
	}

	if err := h.challenges.Create(c.Context(), challenge); err != nil {
		return respondError(c, err)
	}

	if err := h.audit.Record(c.Context(), identity.UserID, identity.Name, "create_challenge", "challenge", challenge.ID.String(), map[string]interface{}{
		"title":  challenge.Title,
		"target": challenge.Target,
	}); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(challenge)
}

func (h *ChallengeHandler) ListActive(c *fiber.Ctx) error {
	challenges, err := h.challenges.ListActive(c.Context(), time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"challenges": challenges, "total": len(challenges)})
}

// Progress evaluates the calling user's standing in a challenge.
func (h *ChallengeHandler) Progress(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "Invalid challenge ID")
	}

	status, err := h.completion.Evaluate(c.Context(), identity.UserID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

func (h *ChallengeHandler) Winner(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "Invalid challenge ID")
	}

	winner, err := h.completion.DetermineWinner(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if winner == nil {
		return c.JSON(fiber.Map{"winner": nil})
	}
	return c.JSON(fiber.Map{"winner": winner})
}

// Leaderboard serves the weight-class rankings from the Redis cache.
func (h *ChallengeHandler) Leaderboard(c *fiber.Ctx) error {
	class := scoring.WeightClassID(c.Params("class"))
	valid := false
	for _, wc := range scoring.AllWeightClasses() {
		if wc == class {
			valid = true
			break
		}
	}
	if !valid {
		return badRequest(c, "Unknown weight class")
	}

	limit, _ := paging(c)
	entries, err := h.board.Top(c.Context(), class, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"class": class, "entries": entries})
}
