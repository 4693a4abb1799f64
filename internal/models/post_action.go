package models

import (
	"time"

	"github.com/google/uuid"
)

type SwipeAction string

const (
	SwipeLike SwipeAction = "like"
	SwipeSkip SwipeAction = "skip"
)

func (a SwipeAction) Valid() bool {
	return a == SwipeLike || a == SwipeSkip
}

// PostAction records a swipe decision. One row per (user, post); a
// repeat swipe overwrites the previous decision.
type PostAction struct {
	ID         uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_post_actions_user_post" json:"user_id"`
	PostID     uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_post_actions_user_post" json:"post_id"`
	ActionType SwipeAction `gorm:"size:10;not null" json:"action_type"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Post       Post        `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
