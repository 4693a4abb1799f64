package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostMode is the category of a post.
type PostMode string

const (
	ModeTasukete PostMode = "tasukete" // help-seeking
	ModeAsobo    PostMode = "asobo"    // social meetup
	ModeOshiete  PostMode = "oshiete"  // question/advice
)

func (m PostMode) Valid() bool {
	switch m {
	case ModeTasukete, ModeAsobo, ModeOshiete:
		return true
	}
	return false
}

// PostStatus advances forward only: open -> matched -> completed.
type PostStatus string

const (
	PostStatusOpen      PostStatus = "open"
	PostStatusMatched   PostStatus = "matched"
	PostStatusCompleted PostStatus = "completed"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusOpen, PostStatusMatched, PostStatusCompleted:
		return true
	}
	return false
}

// CanAdvanceTo reports whether next is the legal successor of s.
// completed is terminal; no back-transitions exist.
func (s PostStatus) CanAdvanceTo(next PostStatus) bool {
	switch s {
	case PostStatusOpen:
		return next == PostStatusMatched
	case PostStatusMatched:
		return next == PostStatusCompleted
	}
	return false
}

// Post is a request for help, a meetup, or a question.
type Post struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AuthorID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	Mode            PostMode       `gorm:"size:20;not null;index" json:"mode"`
	Title           string         `gorm:"size:200;not null" json:"title"`
	Content         string         `gorm:"type:text;not null" json:"content"`
	ImageURL        string         `gorm:"size:500" json:"image_url,omitempty"`
	LocationName    string         `gorm:"size:200" json:"location_name,omitempty"`
	Latitude        *float64       `json:"latitude,omitempty"`
	Longitude       *float64       `json:"longitude,omitempty"`
	ScheduledAt     *time.Time     `json:"scheduled_at,omitempty"`
	MaxParticipants int            `gorm:"default:1" json:"max_participants"`
	Status          PostStatus     `gorm:"size:20;not null;default:'open';index" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Author          Profile        `gorm:"foreignKey:AuthorID;references:UserID" json:"author,omitempty"`
}
