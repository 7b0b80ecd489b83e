package model

import (
	"time"
)

// Account represents the database model for accounts
type Account struct {
	ID            string    `gorm:"primaryKey;size:36"`
	AccountNumber string    `gorm:"uniqueIndex;not null;size:100"`
	AccountTitle  string    `gorm:"not null;size:255"`
	Balance       int64     `gorm:"not null"` // Balance in cents
	Status        int       `gorm:"not null"` // 0 = Active, 1 = InActive
	UserID        string    `gorm:"not null;index;size:64"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	// Define relationships
	User         User          `gorm:"foreignKey:UserID;references:ID"`
	Transactions []Transaction `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
