package entity

import (
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/account-opening-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
)

// TransactionType represents the direction of a movement on an account
type TransactionType string

// Transaction types
const (
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"
)

// Transaction represents a single movement on an account. The opening service
// records the schema and reads movements back for statements; it never writes
// them itself.
type Transaction struct {
	ID              string          // Server-assigned identifier
	AccountID       string          // Account the movement belongs to
	Type            TransactionType // deposit or withdraw
	AmountInCents   int64           // Amount in cents for precise arithmetic
	TransactionDate time.Time       // When the movement happened
	CreatedAt       time.Time       // When the movement was recorded
}

// NewTransaction creates a movement record with basic validation
func NewTransaction(id, accountID string, transactionType string, amountInCents int64, transactionDate time.Time, timeProvider coreport.TimeProvider) (*Transaction, error) {
	if id == "" {
		return nil, errs.ErrInvalidTransactionID
	}
	if accountID == "" {
		return nil, errs.ErrInvalidAccountID
	}
	if !isValidTransactionType(transactionType) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidTransactionType, transactionType)
	}
	if amountInCents < 0 {
		return nil, errs.ErrNegativeAmount
	}

	return &Transaction{
		ID:              id,
		AccountID:       accountID,
		Type:            TransactionType(transactionType),
		AmountInCents:   amountInCents,
		TransactionDate: transactionDate,
		CreatedAt:       timeProvider.Now(),
	}, nil
}

// Amount returns the movement amount as a string with 2 decimal places
func (t *Transaction) Amount() string {
	return FormatCents(t.AmountInCents)
}

// IsCredit returns true if this movement increases the account balance
func (t *Transaction) IsCredit() bool {
	return t.Type == TransactionTypeDeposit
}

// isValidTransactionType validates if the movement type is allowed
func isValidTransactionType(transactionType string) bool {
	return transactionType == string(TransactionTypeDeposit) ||
		transactionType == string(TransactionTypeWithdraw)
}
