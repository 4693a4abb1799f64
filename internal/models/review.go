package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is the post author's rating of the accepted applicant once a
// post is completed. The unique index rejects a second review for the
// same (post, reviewee) pair, so a trust score is credited exactly once
// per completed post.
type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_post_reviewee" json:"post_id"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;index" json:"reviewer_id"`
	RevieweeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_post_reviewee;index" json:"reviewee_id"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string    `gorm:"size:1000" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	Post       Post      `gorm:"foreignKey:PostID" json:"-"`
	Reviewer   Profile   `gorm:"foreignKey:ReviewerID;references:UserID" json:"reviewer,omitempty"`
	Reviewee   Profile   `gorm:"foreignKey:RevieweeID;references:UserID" json:"-"`
}
