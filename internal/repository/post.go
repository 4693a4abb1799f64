package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mamalink/mamalink-backend/internal/models"
	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Author").First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns the feed, newest first. Posts authored by users the
// viewer has blocked are excluded; a Nil viewer sees everything.
func (r *PostRepository) List(ctx context.Context, viewerID uuid.UUID, mode models.PostMode, page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Post{})
	if mode != "" {
		query = query.Where("mode = ?", mode)
	}
	if viewerID != uuid.Nil {
		query = query.Where(
			"author_id NOT IN (?)",
			r.db.Model(&models.Block{}).Select("blocked_id").Where("blocker_id = ?", viewerID),
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// Delete soft-deletes the author's own post. A missing or foreign row
// both surface as not found so ownership is never leaked.
func (r *PostRepository) Delete(ctx context.Context, id, authorID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&models.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrPostNotFound
	}
	return nil
}

// SaveAction upserts the viewer's swipe decision for a post.
func (r *PostRepository) SaveAction(ctx context.Context, action *models.PostAction) error {
	var existing models.PostAction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", action.UserID, action.PostID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(action).Error
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&existing).Update("action_type", action.ActionType).Error
}

// ListLiked returns the posts the user swiped "like" on, newest swipe first.
func (r *PostRepository) ListLiked(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	var actions []models.PostAction
	err := r.db.WithContext(ctx).
		Preload("Post").Preload("Post.Author").
		Where("user_id = ? AND action_type = ?", userID, models.SwipeLike).
		Order("updated_at DESC").
		Find(&actions).Error
	if err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(actions))
	for _, a := range actions {
		if a.Post.ID != uuid.Nil {
			posts = append(posts, a.Post)
		}
	}
	return posts, nil
}
