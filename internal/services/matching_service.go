package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mamalink/mamalink-backend/internal/dto"
	"github.com/mamalink/mamalink-backend/internal/models"
	"github.com/mamalink/mamalink-backend/internal/retry"
)

// PostStore is the slice of post persistence the matching workflow needs.
type PostStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
}

// MatchStore persists applications and performs the conditional accept.
type MatchStore interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	FindByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*models.Match, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Match, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Match, error)
	Accept(ctx context.Context, postID, matchID uuid.UUID) error
}

// ReviewStore runs the completion transaction: review insert, post
// close, trust credit.
type ReviewStore interface {
	CompleteWithReview(ctx context.Context, review *models.Review) error
	ListByReviewee(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error)
}

// Notifier delivers in-app notifications. Implementations must not
// fail the calling workflow.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, ntype, title, body string, data map[string]any)
}

// MatchingService drives the post lifecycle: apply, accept, complete.
type MatchingService struct {
	posts       PostStore
	matches     MatchStore
	reviews     ReviewStore
	notifier    Notifier
	acceptRetry retry.Policy
}

func NewMatchingService(posts PostStore, matches MatchStore, reviews ReviewStore, notifier Notifier, attempts int, baseDelay time.Duration) *MatchingService {
	return &MatchingService{
		posts:    posts,
		matches:  matches,
		reviews:  reviews,
		notifier: notifier,
		acceptRetry: retry.Policy{
			MaxAttempts: attempts,
			BaseDelay:   baseDelay,
			// State machine violations are terminal; only storage
			// failures are worth another attempt.
			Retryable: func(err error) bool { return !models.IsWorkflowError(err) },
		},
	}
}

// Apply registers userID as a pending applicant on the post.
func (s *MatchingService) Apply(ctx context.Context, postID, userID uuid.UUID) (*models.Match, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID == userID {
		return nil, models.ErrSelfApply
	}
	if post.Status != models.PostStatusOpen {
		return nil, models.ErrPostNotOpen
	}

	match := &models.Match{
		PostID: postID,
		UserID: userID,
		Status: models.MatchStatusPending,
	}
	if err := s.matches.Create(ctx, match); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, post.AuthorID, models.NotificationNewApplicant,
		"新しい応募があります", post.Title, map[string]any{
			"post_id":  postID.String(),
			"match_id": match.ID.String(),
		})
	return match, nil
}

// Accept confirms one pending applicant and closes the post to further
// accepts. Only the post author may call it. Storage-level failures are
// retried; once the post leaves open, the attempt stops for good.
func (s *MatchingService) Accept(ctx context.Context, postID, matchID, callerID uuid.UUID) (*models.Match, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, models.ErrNotPostAuthor
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.PostID != postID {
		return nil, models.ErrMatchNotFound
	}

	err = retry.Do(ctx, s.acceptRetry, func() error {
		return s.matches.Accept(ctx, postID, matchID)
	})
	if err != nil {
		return nil, err
	}

	match.Status = models.MatchStatusAccepted
	s.notifier.Notify(ctx, match.UserID, models.NotificationMatchAccepted,
		"マッチングが成立しました", post.Title, map[string]any{
			"post_id":  postID.String(),
			"match_id": matchID.String(),
		})
	return match, nil
}

// CompleteAndReview closes a matched post and credits the accepted
// applicant's trust score, all in one transaction on the store side.
func (s *MatchingService) CompleteAndReview(ctx context.Context, postID, callerID uuid.UUID, req *dto.CompleteWithReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, models.ErrInvalidRating
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, models.ErrNotPostAuthor
	}
	if post.Status != models.PostStatusMatched {
		return nil, models.ErrPostNotMatched
	}

	match, err := s.matches.FindByPostAndUser(ctx, postID, req.RevieweeID)
	if err != nil {
		return nil, err
	}
	if match == nil || match.Status != models.MatchStatusAccepted {
		return nil, models.ErrMatchNotMember
	}

	review := &models.Review{
		PostID:     postID,
		ReviewerID: callerID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviews.CompleteWithReview(ctx, review); err != nil {
		return nil, err
	}

	slog.Info("post completed",
		"post_id", postID.String(),
		"reviewee_id", req.RevieweeID.String(),
		"rating", req.Rating)

	s.notifier.Notify(ctx, req.RevieweeID, models.NotificationReview,
		"レビューが届きました", post.Title, map[string]any{
			"post_id": postID.String(),
			"rating":  req.Rating,
		})
	return review, nil
}

// ListApplicants returns pending and accepted applicants. Author only.
func (s *MatchingService) ListApplicants(ctx context.Context, postID, callerID uuid.UUID) ([]models.Match, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, models.ErrNotPostAuthor
	}
	return s.matches.ListByPost(ctx, postID)
}

// ListMyMatches returns the matches the user applied to.
func (s *MatchingService) ListMyMatches(ctx context.Context, userID uuid.UUID) ([]models.Match, error) {
	return s.matches.ListByUser(ctx, userID)
}

// ListReviews returns the reviews a user has received.
func (s *MatchingService) ListReviews(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error) {
	return s.reviews.ListByReviewee(ctx, revieweeID)
}
