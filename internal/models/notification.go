// Package models contains data structures for the application's domain models.
package models

import "time"

// NotificationType classifies what triggered a notification.
type NotificationType string

const (
	// NotificationTypeLike is emitted when a user likes a post.
	NotificationTypeLike NotificationType = "like"
	// NotificationTypeComment is emitted when a user comments on a post.
	NotificationTypeComment NotificationType = "comment"
	// NotificationTypeFollow is emitted when a user follows another user.
	NotificationTypeFollow NotificationType = "follow"
)

// Notification is the durable record of an event affecting a user. The
// realtime push is best-effort; this row is the source of truth.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Type        NotificationType `gorm:"type:varchar(20);not null;index" json:"type"`
	RecipientID uint             `gorm:"not null;index" json:"recipient_id"`
	ActorID     uint             `gorm:"not null" json:"actor_id"`
	SubjectID   *uint            `json:"subject_id,omitempty"`
	Message     string           `gorm:"not null" json:"message"`
	Read        bool             `gorm:"default:false" json:"read"`
	CreatedAt   time.Time        `json:"created_at"`

	// Relationships
	Actor User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}
