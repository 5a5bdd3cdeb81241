package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"flock/internal/middleware"
	"flock/internal/models"
	"flock/internal/notifications"
	"flock/internal/observability"
	"flock/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles the realtime connection. Every authenticated
// connection lands in its user room; post rooms are joined on request. Invalid
// frames produce a scoped error event and never close the connection.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		ctx := context.Background()

		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			log.Printf("WebSocket: Unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket: Failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		client.Handler = func(c *notifications.Client, data []byte) {
			s.handleRealtimeEvent(ctx, c, data)
		}

		go client.WritePump()
		client.ReadPump()
	})
}

// handleRealtimeEvent dispatches one inbound frame. Frames are processed in
// arrival order per connection.
func (s *Server) handleRealtimeEvent(ctx context.Context, client *notifications.Client, data []byte) {
	var incoming map[string]interface{}
	if err := json.Unmarshal(data, &incoming); err != nil {
		sendError(client, "INVALID_EVENT", "Malformed event")
		return
	}

	eventType, ok := incoming["type"].(string)
	if !ok {
		sendError(client, "INVALID_EVENT", "Event type is required")
		return
	}
	observability.WebSocketEventsTotal.WithLabelValues(eventType).Inc()

	switch eventType {
	case eventJoinPost:
		s.handleJoinPost(ctx, client, incoming)
	case eventLeavePost:
		s.handleLeavePost(client, incoming)
	case eventSendMessage:
		s.handleSendMessage(ctx, client, incoming)
	case eventTypingStart:
		s.handleTyping(ctx, client, incoming, eventUserTyping)
	case eventTypingStop:
		s.handleTyping(ctx, client, incoming, eventUserStoppedTyping)
	default:
		sendError(client, "INVALID_EVENT", "Unknown event type: "+eventType)
	}
}

// handleJoinPost subscribes the connection to a post room after a read-access
// check. Joining twice is a no-op.
func (s *Server) handleJoinPost(ctx context.Context, client *notifications.Client, incoming map[string]interface{}) {
	postID, ok := eventUintField(incoming, "post_id")
	if !ok {
		sendError(client, "INVALID_EVENT", "post_id is required")
		return
	}

	viewer := models.IdentifiedViewer(client.UserID)
	if _, err := s.postService.GetPost(ctx, viewer, postID); err != nil {
		sendAppError(client, err)
		return
	}

	s.hub.Join(client, notifications.PostRoom(postID))
	sendEvent(client, "joined_post", fiber.Map{"post_id": postID})
}

func (s *Server) handleLeavePost(client *notifications.Client, incoming map[string]interface{}) {
	postID, ok := eventUintField(incoming, "post_id")
	if !ok {
		sendError(client, "INVALID_EVENT", "post_id is required")
		return
	}
	s.hub.Leave(client, notifications.PostRoom(postID))
}

// handleSendMessage persists a direct message and then broadcasts it. The
// receiver's connections get new_message; only the originating connection
// gets the message_sent ack.
func (s *Server) handleSendMessage(ctx context.Context, client *notifications.Client, incoming map[string]interface{}) {
	receiverID, ok := eventUintField(incoming, "receiver_id")
	if !ok {
		sendError(client, "INVALID_EVENT", "receiver_id is required")
		return
	}
	content, _ := incoming["content"].(string)
	mediaURL, _ := incoming["media_url"].(string)

	message, err := s.messageService.SendMessage(ctx, service.SendMessageInput{
		SenderID:   client.UserID,
		ReceiverID: receiverID,
		Content:    content,
		MediaURL:   mediaURL,
	})
	if err != nil {
		sendAppError(client, err)
		return
	}

	s.pushNewMessage(ctx, message)
	sendEvent(client, eventMessageSent, message)
}

// handleTyping forwards a transient typing indicator to the receiver's
// connections. Indicators are rate limited and never persisted.
func (s *Server) handleTyping(ctx context.Context, client *notifications.Client, incoming map[string]interface{}, outType string) {
	receiverID, ok := eventUintField(incoming, "receiver_id")
	if !ok {
		sendError(client, "INVALID_EVENT", "receiver_id is required")
		return
	}

	id := fmt.Sprintf("user:%d", client.UserID)
	allowed, err := middleware.CheckRateLimit(ctx, s.redis, "typing", id, 10, 10*time.Second)
	if err != nil {
		// Fail open when the limiter is unavailable, matching the HTTP paths.
		allowed = true
	}
	if !allowed {
		return // Silently drop spammy typing indicators
	}

	payload, err := json.Marshal(realtimeEvent{
		Type:    outType,
		Payload: fiber.Map{"user_id": client.UserID},
	})
	if err != nil {
		return
	}
	s.push.PushUser(ctx, receiverID, payload)
}

func sendEvent(client *notifications.Client, eventType string, payload interface{}) {
	data, err := json.Marshal(realtimeEvent{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("WebSocket: failed to encode %s event: %v", eventType, err)
		return
	}
	client.TrySend(data)
}

func sendError(client *notifications.Client, code, message string) {
	sendEvent(client, eventError, fiber.Map{"code": code, "message": message})
}

// sendAppError reports a failed operation on this connection only, using the
// shared error taxonomy.
func sendAppError(client *notifications.Client, err error) {
	if appErr, ok := err.(*models.AppError); ok {
		sendError(client, appErr.Code, appErr.Message)
		return
	}
	sendError(client, models.CodeInternal, "Internal server error")
}

func eventUintField(incoming map[string]interface{}, field string) (uint, bool) {
	value, ok := incoming[field].(float64)
	if !ok || value <= 0 {
		return 0, false
	}
	return uint(value), true
}
