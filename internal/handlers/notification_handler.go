package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mamalink/mamalink-backend/internal/dto"
	"github.com/mamalink/mamalink-backend/internal/middleware"
	"github.com/mamalink/mamalink-backend/internal/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	notifications, total, err := h.notificationService.List(c.Context(), userID, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	unread, err := h.notificationService.UnreadCount(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
		Pagination: dto.Pagination{
			Page:    page,
			PerPage: limit,
			Total:   total,
		},
	})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid notification id")
	}

	if err := h.notificationService.MarkRead(c.Context(), userID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification marked read"})
}
