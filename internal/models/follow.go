// Package models contains data structures for the application's domain models.
package models

import "time"

// Follow is a directed edge meaning the follower receives the followee's
// posts in their personalized feed. The (follower, followee) pair is unique;
// deleting either endpoint user removes the edge.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"follower,omitempty"`
	Followee User `gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE" json:"followee,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
