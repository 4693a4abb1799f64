package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mamalink/mamalink-backend/internal/models"
	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, match *models.Match) error {
	err := r.db.WithContext(ctx).Create(match).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// The (post_id, user_id) unique index caught a concurrent apply.
		return models.ErrAlreadyApplied
	}
	return err
}

func (r *MatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := r.db.WithContext(ctx).First(&match, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// FindByPostAndUser returns (nil, nil) when no match row exists.
func (r *MatchRepository) FindByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&match).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *MatchRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&matches).Error
	return matches, err
}

func (r *MatchRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.WithContext(ctx).
		Preload("Post").Preload("Post.Author").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&matches).Error
	return matches, err
}

// Accept advances the match to accepted and its post to matched in one
// transaction. Both updates are conditional on the prior status, so a
// concurrent accept on the same post leaves exactly one winner: the
// loser's post update touches zero rows and the whole transaction rolls
// back, including its match update.
func (r *MatchRepository) Accept(ctx context.Context, postID, matchID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Match{}).
			Where("id = ? AND post_id = ? AND status = ?", matchID, postID, models.MatchStatusPending).
			Update("status", models.MatchStatusAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Match{}).
				Where("id = ? AND post_id = ?", matchID, postID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return models.ErrMatchNotFound
			}
			return models.ErrPostNotOpen
		}

		result = tx.Model(&models.Post{}).
			Where("id = ? AND status = ?", postID, models.PostStatusOpen).
			Update("status", models.PostStatusMatched)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrPostNotOpen
		}
		return nil
	})
}
