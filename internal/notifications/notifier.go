package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "realtime:"

// Notifier fans realtime payloads out across server instances via Redis
// pub/sub. Publishing is fire-and-forget; when Redis is unavailable events
// still reach connections on the local instance through the hub.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier backed by the given Redis client. A nil
// client disables cross-instance delivery.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishRoom publishes payload to the cross-instance channel for a room.
func (n *Notifier) PublishRoom(ctx context.Context, room string, payload []byte) {
	if n == nil || n.rdb == nil {
		return
	}
	if err := n.rdb.Publish(ctx, channelPrefix+room, payload).Err(); err != nil {
		slog.Warn("realtime publish failed", "room", room, "error", err)
	}
}

// PublishUser publishes payload to every instance holding connections for the user.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload []byte) {
	n.PublishRoom(ctx, UserRoom(userID), payload)
}

// PublishPost publishes payload to every instance with members in the post room.
func (n *Notifier) PublishPost(ctx context.Context, postID uint, payload []byte) {
	n.PublishRoom(ctx, PostRoom(postID), payload)
}

// StartPatternSubscriber subscribes to all realtime channels and invokes
// handle for each received message until ctx is cancelled. It returns after
// the subscription is established.
func (n *Notifier) StartPatternSubscriber(ctx context.Context, handle func(channel, payload string)) error {
	if n == nil || n.rdb == nil {
		return nil
	}

	sub := n.rdb.PSubscribe(ctx, channelPrefix+"*")
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return fmt.Errorf("realtime subscribe: %w", err)
	}

	ch := sub.Channel()
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				handle(msg.Channel, msg.Payload)
			}
		}
	}()

	return nil
}

// roomForChannel maps a Redis channel name back to the local room key.
func roomForChannel(channel string) (string, bool) {
	room, ok := strings.CutPrefix(channel, channelPrefix)
	if !ok || room == "" {
		return "", false
	}
	kind := roomKind(room)
	if kind != "user" && kind != "post" {
		return "", false
	}
	return room, true
}
