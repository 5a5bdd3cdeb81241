package notifications

import (
	"log/slog"
	"time"

	"flock/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBuffer     = 256
)

var dropNotice = []byte(`{"type":"error","payload":{"code":"SLOW_CONSUMER","message":"events dropped"}}`)

// Client is a single websocket connection owned by an authenticated user.
// Writes go through the buffered Send channel so a slow consumer never blocks
// a broadcast.
type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	UserID uint
	Send   chan []byte

	// Handler is invoked for each inbound frame, in arrival order.
	Handler func(c *Client, data []byte)
}

// NewClient wraps a websocket connection. The caller is responsible for
// starting ReadPump and WritePump.
func NewClient(hub *Hub, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		Hub:    hub,
		Conn:   conn,
		UserID: userID,
		Send:   make(chan []byte, sendBuffer),
	}
}

// TrySend queues payload without blocking. When the connection's buffer is
// full the payload is dropped and a single drop notice is queued if room
// remains, so the client learns it missed events. A broadcast may hold a
// member snapshot taken before the connection tore down, so a send can race
// channel closure; the recover turns that into a counted drop.
func (c *Client) TrySend(payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			observability.WebSocketBackpressureDrops.WithLabelValues("realtime", "closed").Inc()
		}
	}()

	select {
	case c.Send <- payload:
	default:
		observability.WebSocketBackpressureDrops.WithLabelValues("realtime", "buffer_full").Inc()
		select {
		case c.Send <- dropNotice:
		default:
		}
	}
}

// ReadPump reads inbound frames and dispatches them sequentially to Handler.
// It unregisters the client and closes the connection when the read loop ends.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.UnregisterClient(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "user_id", c.UserID, "error", err)
			}
			return
		}
		if c.Handler != nil {
			c.Handler(c, data)
		}
	}
}

// WritePump drains the Send channel onto the wire and keeps the connection
// alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
