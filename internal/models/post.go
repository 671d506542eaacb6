package models

import "time"

// Post is a short text entry authored by a user. Posts are immutable once
// created and are never deleted.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);index:idx_post_author;not null"`
	Content   string    `json:"content" gorm:"type:text;not null" validate:"required"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_post_created;not null"`
}

// TableName specifies the table name for Post.
func (Post) TableName() string { return "posts" }
