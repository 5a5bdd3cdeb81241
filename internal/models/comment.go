// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. A comment may reply to another
// comment; the read path exposes a single level of replies.
type Comment struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Content  string   `gorm:"not null" json:"content"`
	UserID   uint     `gorm:"not null" json:"user_id"`
	PostID   uint     `gorm:"not null;index" json:"post_id"`
	ParentID *uint    `gorm:"index" json:"parent_id,omitempty"`
	User     User     `gorm:"foreignKey:UserID" json:"user"`
	Post     Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Parent   *Comment `gorm:"foreignKey:ParentID" json:"-"`
	// RepliesCount is not persisted; computed at query time
	RepliesCount int            `gorm:"->" json:"replies_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
