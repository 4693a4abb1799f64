package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mamalink/mamalink-backend/internal/dto"
	"github.com/mamalink/mamalink-backend/internal/models"
	"github.com/mamalink/mamalink-backend/internal/services"
)

// respondError translates domain errors into the API error taxonomy.
// Anything unrecognized becomes a 500 without leaking its message.
func respondError(c *fiber.Ctx, err error) error {
	var rejected *services.ErrContentRejected
	if errors.As(err, &rejected) {
		return respond(c, fiber.StatusUnprocessableEntity, "INVALID_INPUT", services.RejectionMessage(rejected.Reason))
	}
	var invalid *services.ValidationError
	if errors.As(err, &invalid) {
		return respond(c, fiber.StatusBadRequest, "INVALID_INPUT", invalid.Error())
	}

	switch {
	case errors.Is(err, models.ErrPostNotFound),
		errors.Is(err, models.ErrMatchNotFound),
		errors.Is(err, models.ErrProfileNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrReportNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())

	case errors.Is(err, models.ErrAlreadyApplied),
		errors.Is(err, models.ErrAlreadyReviewed),
		errors.Is(err, services.ErrAlreadyBlocked),
		errors.Is(err, services.ErrEmailTaken):
		return respond(c, fiber.StatusConflict, "ALREADY_EXISTS", err.Error())

	case errors.Is(err, models.ErrNotPostAuthor),
		errors.Is(err, models.ErrMatchNotMember):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", err.Error())

	case errors.Is(err, models.ErrSelfApply),
		errors.Is(err, models.ErrPostNotOpen),
		errors.Is(err, models.ErrPostNotMatched),
		errors.Is(err, services.ErrSelfBlock):
		return respond(c, fiber.StatusUnprocessableEntity, "INVALID_ACTION", err.Error())

	case errors.Is(err, models.ErrInvalidRating),
		errors.Is(err, models.ErrEmptyMessage):
		return respond(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return respond(c, fiber.StatusUnauthorized, "AUTH_REQUIRED", err.Error())
	}

	return respond(c, fiber.StatusInternalServerError, "INTERNAL", "Internal server error")
}

func respond(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Error:   true,
		Code:    code,
		Message: message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return respond(c, fiber.StatusBadRequest, "INVALID_INPUT", message)
}

func unauthorized(c *fiber.Ctx) error {
	return respond(c, fiber.StatusUnauthorized, "AUTH_REQUIRED", "Unauthorized")
}
