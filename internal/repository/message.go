// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"flock/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct-message persistence.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListBetween(ctx context.Context, userID, peerID uint, limit, offset int) ([]*models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	// Reload with sender for the broadcast payload.
	return r.db.WithContext(ctx).Preload("Sender").First(message, message.ID).Error
}

// ListBetween returns the conversation between two users, newest first.
func (r *messageRepository) ListBetween(ctx context.Context, userID, peerID uint, limit, offset int) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
