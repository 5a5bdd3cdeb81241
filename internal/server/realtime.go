package server

import (
	"context"

	"flock/internal/notifications"
)

// realtimePush delivers payloads to realtime rooms. With Redis available it
// publishes through the Notifier so every instance's subscriber fans the
// payload out to its local hub; without Redis it degrades to local-only
// delivery.
type realtimePush struct {
	hub      *notifications.Hub
	notifier *notifications.Notifier
}

func newRealtimePush(hub *notifications.Hub, notifier *notifications.Notifier) *realtimePush {
	return &realtimePush{hub: hub, notifier: notifier}
}

func (p *realtimePush) PushUser(ctx context.Context, userID uint, payload []byte) {
	if p.notifier != nil {
		p.notifier.PublishUser(ctx, userID, payload)
		return
	}
	p.hub.BroadcastUser(userID, payload)
}

func (p *realtimePush) PushPost(ctx context.Context, postID uint, payload []byte) {
	if p.notifier != nil {
		p.notifier.PublishPost(ctx, postID, payload)
		return
	}
	p.hub.Broadcast(notifications.PostRoom(postID), payload)
}
