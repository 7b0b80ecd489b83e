package model

import (
	"time"
)

// Transaction represents the database model for account movements
type Transaction struct {
	ID              string    `gorm:"primaryKey;size:36"`
	AccountID       string    `gorm:"not null;index;size:36"`
	Type            string    `gorm:"not null;size:20"`
	AmountInCents   int64     `gorm:"not null"`
	TransactionDate time.Time `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
