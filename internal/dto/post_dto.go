package dto

import (
	"time"

	"github.com/mamalink/mamalink-backend/internal/models"
)

type CreatePostRequest struct {
	Mode            string     `json:"mode"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	ImageURL        string     `json:"image_url,omitempty"`
	LocationName    string     `json:"location_name,omitempty"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	MaxParticipants int        `json:"max_participants,omitempty"`
}

type PostListResponse struct {
	Posts      []models.Post `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

type SwipeRequest struct {
	Action string `json:"action"`
}

type SwipeResponse struct {
	Action  string        `json:"action"`
	Matched bool          `json:"matched"`
	Match   *models.Match `json:"match,omitempty"`
}
