package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/mamalink/mamalink-backend/internal/dto"
	"github.com/mamalink/mamalink-backend/internal/models"
	"github.com/mamalink/mamalink-backend/internal/repository"
)

// PostService covers the feed: creating posts, browsing, swiping.
type PostService struct {
	posts      *repository.PostRepository
	matching   *MatchingService
	moderation *ModerationService
}

func NewPostService(posts *repository.PostRepository, matching *MatchingService, moderation *ModerationService) *PostService {
	return &PostService{posts: posts, matching: matching, moderation: moderation}
}

func (s *PostService) Create(ctx context.Context, authorID uuid.UUID, req *dto.CreatePostRequest) (*models.Post, error) {
	mode := models.PostMode(req.Mode)
	if !mode.Valid() {
		return nil, NewValidationError("invalid mode: must be tasukete, asobo, or oshiete")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, NewValidationError("title and content are required")
	}
	if err := s.moderation.CheckContent(req.Title + "\n" + req.Content); err != nil {
		return nil, err
	}

	maxParticipants := req.MaxParticipants
	if maxParticipants < 1 {
		maxParticipants = 1
	}

	post := &models.Post{
		AuthorID:        authorID,
		Mode:            mode,
		Title:           req.Title,
		Content:         req.Content,
		ImageURL:        req.ImageURL,
		LocationName:    req.LocationName,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		ScheduledAt:     req.ScheduledAt,
		MaxParticipants: maxParticipants,
		Status:          models.PostStatusOpen,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Feed lists open posts for swiping, newest first, with posts from
// blocked authors filtered out.
func (s *PostService) Feed(ctx context.Context, viewerID uuid.UUID, mode string, page, limit int) ([]models.Post, int64, error) {
	if mode != "" && !models.PostMode(mode).Valid() {
		return nil, 0, NewValidationError("invalid mode filter")
	}
	return s.posts.List(ctx, viewerID, models.PostMode(mode), page, limit)
}

func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID)
}

func (s *PostService) Delete(ctx context.Context, id, authorID uuid.UUID) error {
	return s.posts.Delete(ctx, id, authorID)
}

// Swipe records the decision; a like also applies to the post. A like
// on a post the user already applied to stays idempotent.
func (s *PostService) Swipe(ctx context.Context, userID, postID uuid.UUID, action string) (*dto.SwipeResponse, error) {
	swipe := models.SwipeAction(action)
	if !swipe.Valid() {
		return nil, NewValidationError("invalid action: must be like or skip")
	}

	if err := s.posts.SaveAction(ctx, &models.PostAction{
		UserID:     userID,
		PostID:     postID,
		ActionType: swipe,
	}); err != nil {
		return nil, err
	}

	resp := &dto.SwipeResponse{Action: action}
	if swipe != models.SwipeLike {
		return resp, nil
	}

	match, err := s.matching.Apply(ctx, postID, userID)
	switch {
	case err == nil:
		resp.Matched = true
		resp.Match = match
	case errors.Is(err, models.ErrAlreadyApplied):
		// repeat like, nothing to do
	default:
		return nil, err
	}
	return resp, nil
}

func (s *PostService) ListLiked(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	return s.posts.ListLiked(ctx, userID)
}
