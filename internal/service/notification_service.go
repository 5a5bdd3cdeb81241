package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"flock/internal/models"
	"flock/internal/observability"
	"flock/internal/repository"
)

// RealtimePush delivers a payload to currently connected clients. Delivery is
// best-effort: an offline recipient simply misses the push and reads the
// stored notification later.
type RealtimePush interface {
	PushUser(ctx context.Context, userID uint, payload []byte)
	PushPost(ctx context.Context, postID uint, payload []byte)
}

type NotificationService struct {
	notificationRepo repository.NotificationRepository
	push             RealtimePush
}

type NotifyInput struct {
	Type      models.NotificationType
	Recipient uint
	Actor     uint
	SubjectID *uint
	Message   string
}

type ListNotificationsInput struct {
	RecipientID uint
	Limit       int
	Offset      int
}

func NewNotificationService(notificationRepo repository.NotificationRepository, push RealtimePush) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		push:             push,
	}
}

// Notify stores a notification row and then attempts a realtime push. The row
// write is the source of truth; a failed push is recorded in metrics and
// swallowed. Self-notifications are dropped.
func (s *NotificationService) Notify(ctx context.Context, in NotifyInput) error {
	if in.Recipient == in.Actor {
		return nil
	}

	notification := &models.Notification{
		Type:        in.Type,
		RecipientID: in.Recipient,
		ActorID:     in.Actor,
		SubjectID:   in.SubjectID,
		Message:     in.Message,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	s.pushNotification(ctx, notification)
	return nil
}

func (s *NotificationService) pushNotification(ctx context.Context, n *models.Notification) {
	if s.push == nil {
		observability.NotificationPushes.WithLabelValues(string(n.Type), "skipped").Inc()
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type":    "notification",
		"payload": n,
	})
	if err != nil {
		slog.Error("failed to encode notification push", "notification_id", n.ID, "error", err)
		observability.NotificationPushes.WithLabelValues(string(n.Type), "error").Inc()
		return
	}

	s.push.PushUser(ctx, n.RecipientID, payload)
	observability.NotificationPushes.WithLabelValues(string(n.Type), "pushed").Inc()
}

func (s *NotificationService) ListNotifications(ctx context.Context, in ListNotificationsInput) ([]*models.Notification, error) {
	return s.notificationRepo.ListByRecipient(ctx, in.RecipientID, in.Limit, in.Offset)
}
