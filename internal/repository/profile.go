package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mamalink/mamalink-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert syncs the identity-derived fields. Self-edited fields (bio,
// area, interests, sharing settings) are left untouched on conflict.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "avatar_url", "updated_at"}),
	}).Create(profile).Error
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, userID uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrProfileNotFound
	}
	return nil
}

// ListSharingLocation returns profiles visible on the neighborhood map.
func (r *ProfileRepository) ListSharingLocation(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.WithContext(ctx).
		Where("share_location = true AND latitude IS NOT NULL AND longitude IS NOT NULL").
		Find(&profiles).Error
	return profiles, err
}
