package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamalink/mamalink-backend/internal/dto"
	"github.com/mamalink/mamalink-backend/internal/models"
)

type mockPostStore struct {
	getByID func(ctx context.Context, id uuid.UUID) (*models.Post, error)
}

func (m *mockPostStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return m.getByID(ctx, id)
}

type mockMatchStore struct {
	create            func(ctx context.Context, match *models.Match) error
	getByID           func(ctx context.Context, id uuid.UUID) (*models.Match, error)
	findByPostAndUser func(ctx context.Context, postID, userID uuid.UUID) (*models.Match, error)
	listByPost        func(ctx context.Context, postID uuid.UUID) ([]models.Match, error)
	listByUser        func(ctx context.Context, userID uuid.UUID) ([]models.Match, error)
	accept            func(ctx context.Context, postID, matchID uuid.UUID) error
}

func (m *mockMatchStore) Create(ctx context.Context, match *models.Match) error {
	return m.create(ctx, match)
}

func (m *mockMatchStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return m.getByID(ctx, id)
}

func (m *mockMatchStore) FindByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*models.Match, error) {
	return m.findByPostAndUser(ctx, postID, userID)
}

func (m *mockMatchStore) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Match, error) {
	return m.listByPost(ctx, postID)
}

func (m *mockMatchStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Match, error) {
	return m.listByUser(ctx, userID)
}

func (m *mockMatchStore) Accept(ctx context.Context, postID, matchID uuid.UUID) error {
	return m.accept(ctx, postID, matchID)
}

type mockReviewStore struct {
	completeWithReview func(ctx context.Context, review *models.Review) error
	listByReviewee     func(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error)
}

func (m *mockReviewStore) CompleteWithReview(ctx context.Context, review *models.Review) error {
	return m.completeWithReview(ctx, review)
}

func (m *mockReviewStore) ListByReviewee(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error) {
	return m.listByReviewee(ctx, revieweeID)
}

type sentNotification struct {
	userID uuid.UUID
	ntype  string
}

type mockNotifier struct {
	sent []sentNotification
}

func (m *mockNotifier) Notify(ctx context.Context, userID uuid.UUID, ntype, title, body string, data map[string]any) {
	m.sent = append(m.sent, sentNotification{userID: userID, ntype: ntype})
}

func newTestService(posts PostStore, matches MatchStore, reviews ReviewStore, notifier *mockNotifier) *MatchingService {
	return NewMatchingService(posts, matches, reviews, notifier, 3, time.Millisecond)
}

func openPost(authorID uuid.UUID) *models.Post {
	return &models.Post{
		ID:       uuid.New(),
		AuthorID: authorID,
		Mode:     models.ModeTasukete,
		Title:    "買い物を手伝ってほしい",
		Status:   models.PostStatusOpen,
	}
}

func TestApply(t *testing.T) {
	author := uuid.New()
	applicant := uuid.New()

	t.Run("registers a pending applicant and notifies the author", func(t *testing.T) {
		post := openPost(author)
		var created *models.Match
		matches := &mockMatchStore{
			create: func(ctx context.Context, match *models.Match) error {
				match.ID = uuid.New()
				created = match
				return nil
			},
		}
		notifier := &mockNotifier{}
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, matches, &mockReviewStore{}, notifier)

		match, err := svc.Apply(context.Background(), post.ID, applicant)
		require.NoError(t, err)
		assert.Equal(t, models.MatchStatusPending, match.Status)
		assert.Equal(t, created, match)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, author, notifier.sent[0].userID)
		assert.Equal(t, models.NotificationNewApplicant, notifier.sent[0].ntype)
	})

	t.Run("rejects applying to your own post", func(t *testing.T) {
		post := openPost(author)
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, &mockMatchStore{}, &mockReviewStore{}, &mockNotifier{})

		_, err := svc.Apply(context.Background(), post.ID, author)
		assert.ErrorIs(t, err, models.ErrSelfApply)
	})

	t.Run("rejects applying to a post that already matched", func(t *testing.T) {
		post := openPost(author)
		post.Status = models.PostStatusMatched
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, &mockMatchStore{}, &mockReviewStore{}, &mockNotifier{})

		_, err := svc.Apply(context.Background(), post.ID, applicant)
		assert.ErrorIs(t, err, models.ErrPostNotOpen)
	})

	t.Run("surfaces a duplicate application", func(t *testing.T) {
		post := openPost(author)
		matches := &mockMatchStore{
			create: func(ctx context.Context, match *models.Match) error {
				return models.ErrAlreadyApplied
			},
		}
		notifier := &mockNotifier{}
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, matches, &mockReviewStore{}, notifier)

		_, err := svc.Apply(context.Background(), post.ID, applicant)
		assert.ErrorIs(t, err, models.ErrAlreadyApplied)
		assert.Empty(t, notifier.sent)
	})

	t.Run("returns not found for a missing post", func(t *testing.T) {
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) {
				return nil, models.ErrPostNotFound
			},
		}, &mockMatchStore{}, &mockReviewStore{}, &mockNotifier{})

		_, err := svc.Apply(context.Background(), uuid.New(), applicant)
		assert.ErrorIs(t, err, models.ErrPostNotFound)
	})
}

func TestAccept(t *testing.T) {
	author := uuid.New()
	applicant := uuid.New()

	t.Run("accepts a pending applicant and notifies them", func(t *testing.T) {
		post := openPost(author)
		match := &models.Match{ID: uuid.New(), PostID: post.ID, UserID: applicant, Status: models.MatchStatusPending}
		matches := &mockMatchStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Match, error) { return match, nil },
			accept:  func(ctx context.Context, postID, matchID uuid.UUID) error { return nil },
		}
		notifier := &mockNotifier{}
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, matches, &mockReviewStore{}, notifier)

		accepted, err := svc.Accept(context.Background(), post.ID, match.ID, author)
		require.NoError(t, err)
		assert.Equal(t, models.MatchStatusAccepted, accepted.Status)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, applicant, notifier.sent[0].userID)
		assert.Equal(t, models.NotificationMatchAccepted, notifier.sent[0].ntype)
	})

	t.Run("only the post author may accept", func(t *testing.T) {
		post := openPost(author)
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, &mockMatchStore{}, &mockReviewStore{}, &mockNotifier{})

		_, err := svc.Accept(context.Background(), post.ID, uuid.New(), applicant)
		assert.ErrorIs(t, err, models.ErrNotPostAuthor)
	})

	t.Run("rejects a match belonging to a different post", func(t *testing.T) {
		post := openPost(author)
		match := &models.Match{ID: uuid.New(), PostID: uuid.New(), UserID: applicant}
		matches := &mockMatchStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Match, error) { return match, nil },
		}
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, matches, &mockReviewStore{}, &mockNotifier{})

		_, err := svc.Accept(context.Background(), post.ID, match.ID, author)
		assert.ErrorIs(t, err, models.ErrMatchNotFound)
	})

	t.Run("does not retry when the post was taken by a concurrent accept", func(t *testing.T) {
		post := openPost(author)
		match := &models.Match{ID: uuid.New(), PostID: post.ID, UserID: applicant}
		var attempts int
		matches := &mockMatchStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Match, error) { return match, nil },
			accept: func(ctx context.Context, postID, matchID uuid.UUID) error {
				attempts++
				return models.ErrPostNotOpen
			},
		}
		notifier := &mockNotifier{}
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, matches, &mockReviewStore{}, notifier)

		_, err := svc.Accept(context.Background(), post.ID, match.ID, author)
		assert.ErrorIs(t, err, models.ErrPostNotOpen)
		assert.Equal(t, 1, attempts)
		assert.Empty(t, notifier.sent)
	})

	t.Run("retries a transient storage failure", func(t *testing.T) {
		post := openPost(author)
		match := &models.Match{ID: uuid.New(), PostID: post.ID, UserID: applicant}
		var attempts int
		matches := &mockMatchStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Match, error) { return match, nil },
			accept: func(ctx context.Context, postID, matchID uuid.UUID) error {
				attempts++
				if attempts < 3 {
					return errors.New("connection reset")
				}
				return nil
			},
		}
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, matches, &mockReviewStore{}, &mockNotifier{})

		_, err := svc.Accept(context.Background(), post.ID, match.ID, author)
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after the attempt budget", func(t *testing.T) {
		post := openPost(author)
		match := &models.Match{ID: uuid.New(), PostID: post.ID, UserID: applicant}
		storeErr := errors.New("connection reset")
		var attempts int
		matches := &mockMatchStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Match, error) { return match, nil },
			accept: func(ctx context.Context, postID, matchID uuid.UUID) error {
				attempts++
				return storeErr
			},
		}
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, matches, &mockReviewStore{}, &mockNotifier{})

		_, err := svc.Accept(context.Background(), post.ID, match.ID, author)
		assert.ErrorIs(t, err, storeErr)
		assert.Equal(t, 3, attempts)
	})
}

func TestCompleteAndReview(t *testing.T) {
	author := uuid.New()
	applicant := uuid.New()

	matchedPost := func() *models.Post {
		post := openPost(author)
		post.Status = models.PostStatusMatched
		return post
	}
	acceptedMatch := func(postID uuid.UUID) *models.Match {
		return &models.Match{ID: uuid.New(), PostID: postID, UserID: applicant, Status: models.MatchStatusAccepted}
	}

	t.Run("completes the post and reviews the accepted applicant", func(t *testing.T) {
		post := matchedPost()
		matches := &mockMatchStore{
			findByPostAndUser: func(ctx context.Context, postID, userID uuid.UUID) (*models.Match, error) {
				return acceptedMatch(postID), nil
			},
		}
		var stored *models.Review
		reviews := &mockReviewStore{
			completeWithReview: func(ctx context.Context, review *models.Review) error {
				stored = review
				return nil
			},
		}
		notifier := &mockNotifier{}
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, matches, reviews, notifier)

		review, err := svc.CompleteAndReview(context.Background(), post.ID, author, &dto.CompleteWithReviewRequest{
			RevieweeID: applicant,
			Rating:     5,
			Comment:    "とても助かりました",
		})
		require.NoError(t, err)
		assert.Equal(t, stored, review)
		assert.Equal(t, author, review.ReviewerID)
		assert.Equal(t, applicant, review.RevieweeID)
		assert.Equal(t, 5, review.Rating)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, applicant, notifier.sent[0].userID)
		assert.Equal(t, models.NotificationReview, notifier.sent[0].ntype)
	})

	t.Run("rejects a rating outside 1..5", func(t *testing.T) {
		svc := newTestService(&mockPostStore{}, &mockMatchStore{}, &mockReviewStore{}, &mockNotifier{})
		for _, rating := range []int{0, 6, -1} {
			_, err := svc.CompleteAndReview(context.Background(), uuid.New(), author, &dto.CompleteWithReviewRequest{
				RevieweeID: applicant,
				Rating:     rating,
			})
			assert.ErrorIs(t, err, models.ErrInvalidRating)
		}
	})

	t.Run("only the post author may complete", func(t *testing.T) {
		post := matchedPost()
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, &mockMatchStore{}, &mockReviewStore{}, &mockNotifier{})

		_, err := svc.CompleteAndReview(context.Background(), post.ID, applicant, &dto.CompleteWithReviewRequest{
			RevieweeID: applicant,
			Rating:     4,
		})
		assert.ErrorIs(t, err, models.ErrNotPostAuthor)
	})

	t.Run("rejects completing a post that is still open", func(t *testing.T) {
		post := openPost(author)
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, &mockMatchStore{}, &mockReviewStore{}, &mockNotifier{})

		_, err := svc.CompleteAndReview(context.Background(), post.ID, author, &dto.CompleteWithReviewRequest{
			RevieweeID: applicant,
			Rating:     4,
		})
		assert.ErrorIs(t, err, models.ErrPostNotMatched)
	})

	t.Run("rejects a reviewee without an accepted match", func(t *testing.T) {
		post := matchedPost()
		matches := &mockMatchStore{
			findByPostAndUser: func(ctx context.Context, postID, userID uuid.UUID) (*models.Match, error) {
				return &models.Match{PostID: postID, UserID: userID, Status: models.MatchStatusPending}, nil
			},
		}
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, matches, &mockReviewStore{}, &mockNotifier{})

		_, err := svc.CompleteAndReview(context.Background(), post.ID, author, &dto.CompleteWithReviewRequest{
			RevieweeID: applicant,
			Rating:     4,
		})
		assert.ErrorIs(t, err, models.ErrMatchNotMember)
	})

	t.Run("surfaces a duplicate review", func(t *testing.T) {
		post := matchedPost()
		matches := &mockMatchStore{
			findByPostAndUser: func(ctx context.Context, postID, userID uuid.UUID) (*models.Match, error) {
				return acceptedMatch(postID), nil
			},
		}
		reviews := &mockReviewStore{
			completeWithReview: func(ctx context.Context, review *models.Review) error {
				return models.ErrAlreadyReviewed
			},
		}
		notifier := &mockNotifier{}
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, matches, reviews, notifier)

		_, err := svc.CompleteAndReview(context.Background(), post.ID, author, &dto.CompleteWithReviewRequest{
			RevieweeID: applicant,
			Rating:     4,
		})
		assert.ErrorIs(t, err, models.ErrAlreadyReviewed)
		assert.Empty(t, notifier.sent)
	})
}

func TestListApplicants(t *testing.T) {
	author := uuid.New()

	t.Run("returns applicants to the author", func(t *testing.T) {
		post := openPost(author)
		want := []models.Match{{ID: uuid.New(), PostID: post.ID}}
		matches := &mockMatchStore{
			listByPost: func(ctx context.Context, postID uuid.UUID) ([]models.Match, error) { return want, nil },
		}
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, matches, &mockReviewStore{}, &mockNotifier{})

		got, err := svc.ListApplicants(context.Background(), post.ID, author)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("hides applicants from non-authors", func(t *testing.T) {
		post := openPost(author)
		svc := newTestService(&mockPostStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.Post, error) { return post, nil },
		}, &mockMatchStore{}, &mockReviewStore{}, &mockNotifier{})

		_, err := svc.ListApplicants(context.Background(), post.ID, uuid.New())
		assert.ErrorIs(t, err, models.ErrNotPostAuthor)
	})
}
