package models

import "time"

// Thread is a top-level discussion topic.
// OwnerID is nullable so threads survive owner deletion.
type Thread struct {
	ID      string    `gorm:"primaryKey" json:"id"`
	Title   string    `gorm:"not null" json:"title"`
	Body    string    `gorm:"not null" json:"body"`
	Date    time.Time `gorm:"not null" json:"date"`
	OwnerID *string   `gorm:"column:owner" json:"owner"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"-"`
}

// AddedThread is the projection returned after creating a thread.
type AddedThread struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Owner string `json:"owner"`
}
