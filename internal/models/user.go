// Package models contains data structures for the application's domain models.
package models

// User represents a registered forum user. Passwords are stored as bcrypt hashes.
type User struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	FullName string `gorm:"not null" json:"fullname"`
}
