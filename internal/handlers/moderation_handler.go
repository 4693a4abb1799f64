package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mamalink/mamalink-backend/internal/dto"
	"github.com/mamalink/mamalink-backend/internal/middleware"
	"github.com/mamalink/mamalink-backend/internal/services"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

func (h *ModerationHandler) CreateReport(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.moderationService.CreateReport(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	status := c.Query("status")

	reports, total, err := h.moderationService.ListReports(c.Context(), status, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"reports": reports, "total": total})
}

func (h *ModerationHandler) ActionReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report id")
	}

	var req dto.ActionReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.moderationService.ActionReport(c.Context(), reportID, &req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report updated"})
}

func (h *ModerationHandler) Block(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.BlockUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.moderationService.BlockUser(c.Context(), userID, req.BlockedID); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User blocked"})
}

func (h *ModerationHandler) Unblock(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	blockedID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	if err := h.moderationService.UnblockUser(c.Context(), userID, blockedID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User unblocked"})
}

func (h *ModerationHandler) Blocked(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	ids, err := h.moderationService.BlockedIDs(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"blocked_ids": ids})
}
