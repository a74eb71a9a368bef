// Package handlers is the HTTP boundary. Handlers parse and validate
// requests, delegate to services, and translate apperrors kinds onto
// status codes.
package handlers

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
	"github.com/unyieldapp/unyield-server/internal/dto"
	"github.com/unyieldapp/unyield-server/internal/middleware"
)

var validate = validator.New()

func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case apperrors.IsKind(err, apperrors.KindValidation):
		status = fiber.StatusBadRequest
	case apperrors.IsKind(err, apperrors.KindConflict):
		status = fiber.StatusConflict
	case apperrors.IsKind(err, apperrors.KindNotFound):
		status = fiber.StatusNotFound
	case apperrors.IsKind(err, apperrors.KindStorage):
		status = fiber.StatusServiceUnavailable
	}

	message := err.Error()
	if status >= 500 {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		message = "Service temporarily unavailable"
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
		Code:    apperrors.CodeOf(err),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

// parseBody combines body parsing and struct validation. Callers route the
// returned error through respondError.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.Validation(apperrors.CodeInvalidInput, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation(apperrors.CodeInvalidInput, err.Error())
	}
	return nil
}

func idParam(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func caller(c *fiber.Ctx) (middleware.Identity, error) {
	return middleware.CallerIdentity(c)
}

func paging(c *fiber.Ctx) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	offset, _ = strconv.Atoi(c.Query("offset", "0"))
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
