package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Trust score bounds. Every review adds rating*TrustPointsPerStar,
// clamped so the score never exceeds TrustScoreMax.
const (
	TrustScoreInitial  = 100
	TrustScoreMax      = 1000
	TrustPointsPerStar = 10
)

// Profile is the community-facing side of a user, kept in sync with the
// identity record on registration and Apple sign-in.
type Profile struct {
	UserID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	DisplayName   string         `gorm:"size:100;not null" json:"display_name"`
	AvatarURL     string         `gorm:"size:500" json:"avatar_url"`
	Bio           string         `gorm:"size:1000" json:"bio"`
	Area          string         `gorm:"size:100" json:"area"`
	Interests     datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"interests"`
	ChildrenInfo  datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"children_info"`
	TrustScore    int            `gorm:"not null;default:100" json:"trust_score"`
	IsKYCVerified bool           `gorm:"default:false" json:"is_kyc_verified"`
	ShareLocation bool           `gorm:"default:false" json:"share_location"`
	Latitude      *float64       `json:"latitude,omitempty"`
	Longitude     *float64       `json:"longitude,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	User          User           `gorm:"foreignKey:UserID" json:"-"`
}

// ClampTrustScore applies the review increment with the upper bound.
func ClampTrustScore(current, rating int) int {
	next := current + rating*TrustPointsPerStar
	if next > TrustScoreMax {
		return TrustScoreMax
	}
	return next
}
