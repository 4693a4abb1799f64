package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mamalink/mamalink-backend/internal/models"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CompleteWithReview applies the three effects of finishing a post as a
// single transaction: insert the review, advance the post to completed,
// and credit the reviewee's trust score. The post update is conditional
// on the matched status and the trust increment is clamped in SQL, so a
// partial application can never be observed.
func (r *ReviewRepository) CompleteWithReview(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.ErrAlreadyReviewed
			}
			return err
		}

		result := tx.Model(&models.Post{}).
			Where("id = ? AND status = ?", review.PostID, models.PostStatusMatched).
			Update("status", models.PostStatusCompleted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrPostNotMatched
		}

		result = tx.Model(&models.Profile{}).
			Where("user_id = ?", review.RevieweeID).
			Update("trust_score", gorm.Expr(
				"LEAST(trust_score + ?, ?)",
				review.Rating*models.TrustPointsPerStar, models.TrustScoreMax,
			))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrProfileNotFound
		}
		return nil
	})
}

// HasReview reports whether a review already exists for the pair.
func (r *ReviewRepository) HasReview(ctx context.Context, postID, revieweeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("post_id = ? AND reviewee_id = ?", postID, revieweeID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) ListByReviewee(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("reviewee_id = ?", revieweeID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
