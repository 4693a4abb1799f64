package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification types.
const (
	NotificationNewApplicant  = "new_applicant"
	NotificationMatchAccepted = "match_accepted"
	NotificationChatMessage   = "chat_message"
	NotificationReview        = "review_received"
)

type Notification struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string         `gorm:"size:30;not null" json:"type"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	Body      string         `gorm:"size:500" json:"body"`
	Data      datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"data"`
	IsRead    bool           `gorm:"default:false;index" json:"is_read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}
