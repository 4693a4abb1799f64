package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is append-only: rows are never updated or deleted.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MatchID   uuid.UUID `gorm:"type:uuid;not null;index" json:"match_id"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	Match     Match     `gorm:"foreignKey:MatchID" json:"-"`
	Sender    Profile   `gorm:"foreignKey:SenderID;references:UserID" json:"sender,omitempty"`
}
