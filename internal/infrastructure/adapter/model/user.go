package model

import (
	"time"
)

// User represents the database model for account holders
type User struct {
	ID            string    `gorm:"primaryKey;size:64"`
	FirstName     string    `gorm:"size:100"`
	LastName      string    `gorm:"size:100"`
	Email         string    `gorm:"not null;size:255"`
	ProfilePicURL string    `gorm:"size:512"`
	PhoneNumber   string    `gorm:"size:50"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
