package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/mamalink/mamalink-backend/internal/models"
	"github.com/mamalink/mamalink-backend/internal/realtime"
	"github.com/mamalink/mamalink-backend/internal/repository"
)

// NotificationService persists notifications and pushes them to live
// subscribers. Delivery is best-effort: a failure is logged, never
// returned, so workflows that notify cannot be failed by it.
type NotificationService struct {
	notifications *repository.NotificationRepository
	hub           *realtime.Hub
}

func NewNotificationService(notifications *repository.NotificationRepository, hub *realtime.Hub) *NotificationService {
	return &NotificationService{notifications: notifications, hub: hub}
}

func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, ntype, title, body string, data map[string]any) {
	payload, err := json.Marshal(data)
	if err != nil {
		payload = []byte("{}")
	}

	n := &models.Notification{
		UserID: userID,
		Type:   ntype,
		Title:  title,
		Body:   body,
		Data:   datatypes.JSON(payload),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		slog.Error("failed to store notification", "error", err, "user_id", userID.String(), "type", ntype)
		return
	}

	s.hub.Publish(realtime.UserTopic(userID), ntype, n)
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Notification, int64, error) {
	return s.notifications.ListByUser(ctx, userID, page, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.notifications.MarkRead(ctx, userID, id)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifications.UnreadCount(ctx, userID)
}
