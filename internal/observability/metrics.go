// Package observability provides Prometheus collectors and OpenTelemetry tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WebSocketRoomMembers is the gauge of connections per realtime room kind
	// ("user" or "post"). Room IDs are not used as a label to keep cardinality bounded.
	WebSocketRoomMembers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "flock_websocket_room_members",
		Help: "Number of WebSocket connections per room kind",
	}, []string{"kind"})

	// WebSocketEventsTotal counts inbound WebSocket events by type.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flock_websocket_events_total",
		Help: "Total WebSocket events by type",
	}, []string{"event_type"})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flock_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})

	// NotificationPushes counts best-effort realtime pushes by type and outcome.
	NotificationPushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flock_notification_pushes_total",
		Help: "Total realtime notification push attempts by type and outcome",
	}, []string{"type", "outcome"})

	// MessagesDelivered counts direct messages broadcast to receiver rooms.
	MessagesDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flock_messages_delivered_total",
		Help: "Total direct messages broadcast to receiver rooms",
	})
)
