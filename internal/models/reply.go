package models

import "time"

// Reply belongs to a comment. Like comments, replies are soft-deleted.
type Reply struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	CommentID string    `gorm:"not null;index" json:"comment_id"`
	UserID    string    `gorm:"not null" json:"user_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Comment Comment `gorm:"foreignKey:CommentID" json:"-"`
}

// AddedReply is the projection returned after creating a reply.
type AddedReply struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}
