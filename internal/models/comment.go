package models

import "time"

// Comment belongs to a thread. Deleting a comment only flips IsDeleted;
// the row is retained and its content is redacted at read time.
type Comment struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	Date      time.Time `gorm:"not null" json:"date"`
	ThreadID  string    `gorm:"not null;index" json:"thread_id"`
	UserID    string    `gorm:"not null" json:"user_id"`
	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Thread Thread `gorm:"foreignKey:ThreadID" json:"-"`
}

// AddedComment is the projection returned after creating a comment.
type AddedComment struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

// CommentLike marks that a user liked a comment.
// At most one row may exist per (comment, user) pair.
type CommentLike struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CommentID string `gorm:"not null;uniqueIndex:idx_comment_user" json:"comment_id"`
	UserID    string `gorm:"not null;uniqueIndex:idx_comment_user" json:"user_id"`

	Comment Comment `gorm:"foreignKey:CommentID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}
