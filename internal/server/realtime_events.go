package server

// Inbound realtime event types.
const (
	eventJoinPost    = "join_post"
	eventLeavePost   = "leave_post"
	eventSendMessage = "send_message"
	eventTypingStart = "typing_start"
	eventTypingStop  = "typing_stop"
)

// Outbound realtime event types.
const (
	eventNewMessage        = "new_message"
	eventMessageSent       = "message_sent"
	eventNotification      = "notification"
	eventUserTyping        = "user_typing"
	eventUserStoppedTyping = "user_stopped_typing"
	eventError             = "error"
)

// realtimeEvent is the wire shape of every websocket frame, in both directions.
type realtimeEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}
