package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mamalink/mamalink-backend/internal/models"
	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListByPost returns the post's full history oldest-first, across all of
// its matches, with sender profiles attached. Messages from senders the
// viewer blocked are hidden.
func (r *ChatRepository) ListByPost(ctx context.Context, postID, viewerID uuid.UUID) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("match_id IN (?)",
			r.db.Model(&models.Match{}).Select("id").Where("post_id = ?", postID)).
		Where("sender_id NOT IN (?)",
			r.db.Model(&models.Block{}).Select("blocked_id").Where("blocker_id = ?", viewerID)).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// LatestPerPartner returns each conversation partner's newest message
// involving the user, newest conversation first.
func (r *ChatRepository) LatestByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Preload("Sender").Preload("Match").
		Where("sender_id = ? OR match_id IN (?)", userID,
			r.db.Model(&models.Match{}).Select("id").Where(
				"user_id = ? OR post_id IN (?)", userID,
				r.db.Model(&models.Post{}).Select("id").Where("author_id = ?", userID))).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
