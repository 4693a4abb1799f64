package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mamalink/mamalink-backend/internal/dto"
	"github.com/mamalink/mamalink-backend/internal/middleware"
	"github.com/mamalink/mamalink-backend/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Send(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	msg, err := h.chatService.Send(c.Context(), postID, userID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *ChatHandler) History(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	messages, err := h.chatService.History(c.Context(), postID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ChatHistoryResponse{Messages: messages})
}

func (h *ChatHandler) Conversations(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	conversations, err := h.chatService.Conversations(c.Context(), userID, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ConversationResponse{Conversations: conversations})
}

// AuthorizeChatSocket gates the websocket upgrade: only the post author
// and the accepted applicant may subscribe to the post's chat topic.
func (h *ChatHandler) AuthorizeChatSocket(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	if err := h.chatService.CanJoin(c.Context(), postID, userID); err != nil {
		return respondError(c, err)
	}
	return c.Next()
}
