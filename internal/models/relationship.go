package models

import "time"

// Relationship is a directed follow edge: the follower receives the
// followee's posts in their stream.
//
// The composite unique index idx_relationship_pair = (follower_id, followee_id)
// means duplicate follows are rejected by the storage layer itself, so there is
// no check-then-insert race between concurrent attempts.
type Relationship struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FollowerID string    `json:"follower_id" gorm:"type:varchar(36);index:idx_relationship_follower;uniqueIndex:idx_relationship_pair;not null"`
	FolloweeID string    `json:"followee_id" gorm:"type:varchar(36);index:idx_relationship_followee;uniqueIndex:idx_relationship_pair;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for Relationship.
func (Relationship) TableName() string { return "relationships" }
