package models

import (
	"time"

	"github.com/google/uuid"
)

// Block hides the blocked user's posts and messages from the blocker.
type Block struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BlockerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blocks_pair" json:"blocker_id"`
	BlockedID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blocks_pair" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
	Blocker   User      `gorm:"foreignKey:BlockerID" json:"-"`
	Blocked   User      `gorm:"foreignKey:BlockedID" json:"-"`
}

func (Block) TableName() string {
	return "blocks"
}
