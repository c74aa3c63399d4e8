// Package models contains data structures for the application's domain models.
package models

import "time"

// Relationship is a directed follow edge: Follower follows Followed.
// The composite unique index makes duplicate follows a storage-level
// constraint violation instead of an application-level check, which is the
// only race-safe option under concurrent writers.
type Relationship struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_relationships_edge" json:"follower_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_relationships_edge" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}

// TableName specifies the table name for GORM
func (Relationship) TableName() string {
	return "relationships"
}
