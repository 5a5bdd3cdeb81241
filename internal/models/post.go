// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Visibility is the post-level access policy.
type Visibility string

const (
	// VisibilityPublic makes a post readable by anyone, including anonymous viewers.
	VisibilityPublic Visibility = "public"
	// VisibilityFriends restricts a post to the author and users who follow the author.
	VisibilityFriends Visibility = "friends"
	// VisibilityPrivate restricts a post to its author.
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is one of the known visibility values.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityFriends, VisibilityPrivate:
		return true
	}
	return false
}

// MaxPostTags bounds the number of tags a single post may carry.
const MaxPostTags = 5

// Post represents a post in the Flock application.
type Post struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uint        `gorm:"not null;index" json:"user_id"`
	User       User        `gorm:"foreignKey:UserID" json:"user"`
	Content    string      `gorm:"type:text" json:"content"`
	Visibility Visibility  `gorm:"type:varchar(16);default:'public';index" json:"visibility"`
	Location   string      `json:"location,omitempty"`
	Tags       []string    `gorm:"serializer:json" json:"tags,omitempty"`
	Media      []PostMedia `gorm:"foreignKey:PostID" json:"media,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostMedia is an ordered media reference attached to a post.
type PostMedia struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	URL      string `gorm:"not null" json:"url"`
	Position int    `gorm:"not null;default:0" json:"position"`
}
