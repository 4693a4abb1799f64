package dto

import "github.com/mamalink/mamalink-backend/internal/models"

type SendMessageRequest struct {
	Content string `json:"content"`
}

type ChatHistoryResponse struct {
	Messages []models.ChatMessage `json:"messages"`
}

type ConversationResponse struct {
	Conversations []models.ChatMessage `json:"conversations"`
}

type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
	Pagination    Pagination            `json:"pagination"`
}
