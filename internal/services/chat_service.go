package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mamalink/mamalink-backend/internal/models"
	"github.com/mamalink/mamalink-backend/internal/realtime"
	"github.com/mamalink/mamalink-backend/internal/repository"
)

// ChatService handles the per-post conversation between the author and
// the accepted applicant. A chat opens once a match is accepted.
type ChatService struct {
	posts      *repository.PostRepository
	matches    *repository.MatchRepository
	chats      *repository.ChatRepository
	moderation *ModerationService
	notifier   Notifier
	hub        *realtime.Hub
}

func NewChatService(posts *repository.PostRepository, matches *repository.MatchRepository, chats *repository.ChatRepository, moderation *ModerationService, notifier Notifier, hub *realtime.Hub) *ChatService {
	return &ChatService{
		posts:      posts,
		matches:    matches,
		chats:      chats,
		moderation: moderation,
		notifier:   notifier,
		hub:        hub,
	}
}

// membership resolves the accepted match for the post and the user's
// chat partner. Only the author and the accepted applicant are members.
func (s *ChatService) membership(ctx context.Context, postID, userID uuid.UUID) (*models.Match, uuid.UUID, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, uuid.Nil, err
	}

	if post.AuthorID == userID {
		matches, err := s.matches.ListByPost(ctx, postID)
		if err != nil {
			return nil, uuid.Nil, err
		}
		for i := range matches {
			if matches[i].Status == models.MatchStatusAccepted {
				return &matches[i], matches[i].UserID, nil
			}
		}
		return nil, uuid.Nil, models.ErrMatchNotMember
	}

	match, err := s.matches.FindByPostAndUser(ctx, postID, userID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if match == nil || match.Status != models.MatchStatusAccepted {
		return nil, uuid.Nil, models.ErrMatchNotMember
	}
	return match, post.AuthorID, nil
}

// Send persists a message and fans it out to the post's chat topic.
func (s *ChatService) Send(ctx context.Context, postID, senderID uuid.UUID, content string) (*models.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.ErrEmptyMessage
	}

	match, partnerID, err := s.membership(ctx, postID, senderID)
	if err != nil {
		return nil, err
	}
	if err := s.moderation.CheckContent(content); err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		MatchID:  match.ID,
		SenderID: senderID,
		Content:  content,
	}
	if err := s.chats.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.ChatTopic(postID), "message", msg)
	s.notifier.Notify(ctx, partnerID, models.NotificationChatMessage,
		"新着メッセージ", content, map[string]any{
			"post_id":  postID.String(),
			"match_id": match.ID.String(),
		})
	return msg, nil
}

// History returns the post's messages, oldest first. Members only.
func (s *ChatService) History(ctx context.Context, postID, userID uuid.UUID) ([]models.ChatMessage, error) {
	if _, _, err := s.membership(ctx, postID, userID); err != nil {
		return nil, err
	}
	return s.chats.ListByPost(ctx, postID, userID)
}

// Conversations returns the latest message per match the user is in.
func (s *ChatService) Conversations(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	return s.chats.LatestByUser(ctx, userID, limit)
}

// CanJoin reports whether the user may subscribe to the post's chat
// topic over the websocket.
func (s *ChatService) CanJoin(ctx context.Context, postID, userID uuid.UUID) error {
	_, _, err := s.membership(ctx, postID, userID)
	return err
}
