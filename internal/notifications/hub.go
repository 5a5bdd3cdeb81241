// Package notifications provides real-time event delivery over websocket rooms.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"flock/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// Max connections per user
	maxConnsPerUser = 12
	// Max total connections
	maxTotalConns = 10000
)

// UserRoom returns the identity-scoped room key for a user. Every
// authenticated connection is a member of exactly one user room.
func UserRoom(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// PostRoom returns the resource-scoped room key for a post. Membership is
// voluntary and evaporates on disconnect.
func PostRoom(postID uint) string {
	return fmt.Sprintf("post:%d", postID)
}

func roomKind(room string) string {
	if i := strings.IndexByte(room, ':'); i > 0 {
		return room[:i]
	}
	return "unknown"
}

// Hub is the realtime routing table: a mapping from room key to the set of
// active connections. It holds no durable state and is safe to rebuild from
// scratch after a restart; clients re-join on reconnect.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]map[*Client]struct{}
	membership map[*Client]map[string]struct{}
	userConns  map[uint]int
	totalConns int
	shutdown   chan struct{}
}

// NewHub creates a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		membership: make(map[*Client]map[string]struct{}),
		userConns:  make(map[uint]int),
		shutdown:   make(chan struct{}),
	}
}

// Name returns a human-readable identifier for this hub.
func (h *Hub) Name() string { return "realtime hub" }

// Register adds a connection for the given authenticated user and places it in
// the user's identity room. Returns the Client or an error if limits are exceeded.
func (h *Hub) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()

	if h.totalConns >= maxTotalConns {
		h.mu.Unlock()
		return nil, errors.New("server connection limit reached")
	}
	if h.userConns[userID] >= maxConnsPerUser {
		h.mu.Unlock()
		return nil, errors.New("user connection limit reached")
	}

	client := NewClient(h, conn, userID)
	h.membership[client] = make(map[string]struct{})
	h.userConns[userID]++
	h.totalConns++
	h.joinLocked(client, UserRoom(userID))
	h.mu.Unlock()

	return client, nil
}

// UnregisterClient removes a connection from every room it joined.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rooms, ok := h.membership[client]
	if !ok {
		return
	}
	for room := range rooms {
		h.leaveLocked(client, room)
	}
	delete(h.membership, client)
	h.totalConns--
	if h.userConns[client.UserID] > 1 {
		h.userConns[client.UserID]--
	} else {
		delete(h.userConns, client.UserID)
	}
}

// Join adds the connection to a room. Joining a room the connection is already
// in is a no-op.
func (h *Hub) Join(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, registered := h.membership[client]; !registered {
		return
	}
	h.joinLocked(client, room)
}

// Leave removes the connection from a room. Leaving a room the connection is
// not in is a no-op.
func (h *Hub) Leave(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, registered := h.membership[client]; !registered {
		return
	}
	h.leaveLocked(client, room)
}

func (h *Hub) joinLocked(client *Client, room string) {
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	if _, exists := members[client]; exists {
		return
	}
	members[client] = struct{}{}
	h.membership[client][room] = struct{}{}
	observability.WebSocketRoomMembers.WithLabelValues(roomKind(room)).Inc()
}

func (h *Hub) leaveLocked(client *Client, room string) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	if _, exists := members[client]; !exists {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
	delete(h.membership[client], room)
	observability.WebSocketRoomMembers.WithLabelValues(roomKind(room)).Dec()
}

// Broadcast sends payload to every connection in the room. The member set is
// snapshotted under the read lock; delivery is best-effort.
func (h *Hub) Broadcast(room string, payload []byte) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		c.TrySend(payload)
	}
}

// BroadcastUser sends payload to all of a user's active connections.
func (h *Hub) BroadcastUser(userID uint, payload []byte) {
	h.Broadcast(UserRoom(userID), payload)
}

// IsOnline reports whether a user currently has at least one active connection.
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.userConns[userID] > 0
}

// InRoom reports whether the connection is currently a member of the room.
func (h *Hub) InRoom(client *Client, room string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[room][client]
	return ok
}

// StartWiring connects the Notifier to this hub: it subscribes to the Redis
// realtime channels and forwards payloads to the matching local room.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartPatternSubscriber(ctx, func(channel, payload string) {
		room, ok := roomForChannel(channel)
		if !ok {
			log.Printf("invalid realtime channel: %s", channel)
			return
		}
		h.Broadcast(room, []byte(payload))
	})
}

// Shutdown gracefully closes all websocket connections.
func (h *Hub) Shutdown(_ context.Context) error {
	close(h.shutdown)

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.membership {
		if client.Conn == nil {
			continue
		}
		if err := client.Conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
			log.Printf("failed to write close message for user %d: %v", client.UserID, err)
		}
		if err := client.Conn.Close(); err != nil {
			log.Printf("failed to close websocket for user %d: %v", client.UserID, err)
		}
	}

	h.rooms = make(map[string]map[*Client]struct{})
	h.membership = make(map[*Client]map[string]struct{})
	h.userConns = make(map[uint]int)
	h.totalConns = 0

	return nil
}
