package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus advances forward only: pending -> accepted.
type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
)

// CanAdvanceTo reports whether next is the legal successor of s.
func (s MatchStatus) CanAdvanceTo(next MatchStatus) bool {
	return s == MatchStatusPending && next == MatchStatusAccepted
}

// Match is an applicant's claim against a post. The unique index keeps
// at most one row per (post, applicant) pair.
type Match struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_matches_post_user" json:"post_id"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_matches_post_user" json:"user_id"`
	Status    MatchStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Post      Post        `gorm:"foreignKey:PostID" json:"-"`
	Applicant Profile     `gorm:"foreignKey:UserID;references:UserID" json:"applicant,omitempty"`
}
