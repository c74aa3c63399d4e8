// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxPostContentLen is the maximum post length in characters (runes, not bytes).
const MaxPostContentLen = 140

// Post represents a short text post ("chirp") owned by a single user.
// The (user_id, created_at) composite index backs the newest-first-by-owner
// listing and the feed query.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:varchar(140);not null" json:"content"`
	// ImageURL is an opaque reference managed by the external blob store.
	ImageURL  string         `json:"image_url,omitempty"`
	UserID    uint           `gorm:"not null;index:idx_posts_owner_created,priority:1" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time      `gorm:"index:idx_posts_owner_created,priority:2" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
