package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"flock/internal/models"
	"flock/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendMessage handles POST /api/messages. The message is persisted first and
// then pushed to the receiver's active connections.
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		ReceiverID uint   `json:"receiver_id"`
		Content    string `json:"content"`
		MediaURL   string `json:"media_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.ReceiverID == 0 {
		return models.RespondWithError(c, models.NewValidationError("receiver_id is required"))
	}

	message, err := s.messageService.SendMessage(c.Context(), service.SendMessageInput{
		SenderID:   currentUserID(c),
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		MediaURL:   req.MediaURL,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.pushNewMessage(c.Context(), message)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": message})
}

// GetConversation handles GET /api/messages/:userId
func (s *Server) GetConversation(c *fiber.Ctx) error {
	peerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	p := parsePage(c, 50)

	messages, err := s.messageService.GetConversation(c.Context(), currentUserID(c), peerID, p.Limit, p.Offset())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(listWithHasMore(messages, p, len(messages) == p.Limit))
}

// pushNewMessage delivers a stored message to the receiver's connections.
// Delivery is best-effort; the row is already the source of truth.
func (s *Server) pushNewMessage(ctx context.Context, message *models.Message) {
	payload, err := json.Marshal(fiber.Map{
		"type":    eventNewMessage,
		"payload": message,
	})
	if err != nil {
		slog.Error("failed to encode message push", "message_id", message.ID, "error", err)
		return
	}
	s.push.PushUser(ctx, message.ReceiverID, payload)
}
