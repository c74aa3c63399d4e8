// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account in Chirp.
// Email is stored lowercased and guarded by a database unique index so that
// concurrent signups with the same address cannot both succeed.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordDigest string         `gorm:"not null" json:"-"`
	RememberDigest string         `json:"-"`
	ResetDigest    string         `json:"-"`
	ResetSentAt    *time.Time     `json:"-"`
	Admin          bool           `gorm:"default:false" json:"admin"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Posts          []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
