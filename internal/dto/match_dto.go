package dto

import (
	"github.com/google/uuid"

	"github.com/mamalink/mamalink-backend/internal/models"
)

type ApplicantListResponse struct {
	Applicants []models.Match `json:"applicants"`
}

type CompleteWithReviewRequest struct {
	RevieweeID uuid.UUID `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
}

type ReviewListResponse struct {
	Reviews []models.Review `json:"reviews"`
}
