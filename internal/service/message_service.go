package service

import (
	"context"
	"strings"

	"flock/internal/models"
	"flock/internal/observability"
	"flock/internal/repository"
)

const maxMessageLen = 4000

type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

type SendMessageInput struct {
	SenderID   uint
	ReceiverID uint
	Content    string
	MediaURL   string
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// SendMessage persists a direct message and returns the stored row, sender
// preloaded. The caller is responsible for realtime delivery; persistence
// always happens before any broadcast.
func (s *MessageService) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" && in.MediaURL == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if len(content) > maxMessageLen {
		return nil, models.NewValidationError("Message too long (max 4000 characters)")
	}
	if in.SenderID == in.ReceiverID {
		return nil, models.NewInvalidActionError("You cannot message yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, in.ReceiverID); err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Content:    content,
		MediaURL:   in.MediaURL,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	observability.MessagesDelivered.Inc()
	return message, nil
}

// GetConversation lists messages exchanged between the user and a peer,
// newest first.
func (s *MessageService) GetConversation(ctx context.Context, userID, peerID uint, limit, offset int) ([]*models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, peerID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListBetween(ctx, userID, peerID, limit, offset)
}
