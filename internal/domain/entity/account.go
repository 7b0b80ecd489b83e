package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/account-opening-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
)

// AccountStatus represents the lifecycle state of an account. It is a closed
// enumeration: only the values declared below ever reach storage.
type AccountStatus int

// Account statuses
const (
	AccountStatusActive AccountStatus = iota
	AccountStatusInActive
)

const (
	accountStatusActiveName   = "Active"
	accountStatusInActiveName = "InActive"
)

// ParseAccountStatus converts a wire value to an AccountStatus. Both the
// string names and their integer aliases (0 active, 1 inactive) are accepted
// because older clients of the opening form submit the numeric form.
func ParseAccountStatus(value string) (AccountStatus, error) {
	switch value {
	case accountStatusActiveName, "0":
		return AccountStatusActive, nil
	case accountStatusInActiveName, "1":
		return AccountStatusInActive, nil
	default:
		return AccountStatusActive, fmt.Errorf("%w: %q", errs.ErrInvalidStatus, value)
	}
}

// IsValid reports whether the status is one of the declared values
func (s AccountStatus) IsValid() bool {
	return s == AccountStatusActive || s == AccountStatusInActive
}

// String returns the canonical wire name of the status
func (s AccountStatus) String() string {
	switch s {
	case AccountStatusInActive:
		return accountStatusInActiveName
	default:
		return accountStatusActiveName
	}
}

// MarshalJSON encodes the status under its canonical name
func (s AccountStatus) MarshalJSON() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidStatus, int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes "Active", "InActive" or their integer aliases and
// rejects every other token
func (s *AccountStatus) UnmarshalJSON(data []byte) error {
	token := strings.TrimSpace(string(data))
	token = strings.Trim(token, `"`)

	parsed, err := ParseAccountStatus(token)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Account represents a bank account owned by a single user
type Account struct {
	ID            string        // Server-assigned identifier, never taken from the caller
	AccountNumber string        // Business identifier, unique across all accounts
	AccountTitle  string        // Human readable label shown on statements
	balance       int64         // Balance stored in cents to avoid floating point precision issues (private)
	Status        AccountStatus // Active or InActive
	UserID        string        // Owning user
	Transactions  []Transaction // Movements recorded against the account, empty at creation
	CreatedAt     time.Time     // When the account was opened
	UpdatedAt     time.Time     // When the account was last updated
}

// NewAccount creates an account ready for persistence. The id must already be
// server-generated; submissions never choose their own.
func NewAccount(id, accountNumber, accountTitle string, balanceInCents int64, status AccountStatus, userID string, timeProvider coreport.TimeProvider) (*Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.ErrInvalidAccountID
	}
	if strings.TrimSpace(accountNumber) == "" {
		return nil, errs.ErrInvalidAccountNumber
	}
	if strings.TrimSpace(accountTitle) == "" {
		return nil, errs.ErrInvalidAccountTitle
	}
	if balanceInCents < 0 {
		return nil, errs.ErrNegativeAmount
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidStatus, int(status))
	}
	if strings.TrimSpace(userID) == "" {
		return nil, errs.ErrInvalidUserID
	}

	now := timeProvider.Now()
	return &Account{
		ID:            id,
		AccountNumber: accountNumber,
		AccountTitle:  accountTitle,
		balance:       balanceInCents,
		Status:        status,
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// RestoreAccount rebuilds an account from persisted state without validation
func RestoreAccount(id, accountNumber, accountTitle string, balanceInCents int64, status AccountStatus, userID string, createdAt, updatedAt time.Time) *Account {
	return &Account{
		ID:            id,
		AccountNumber: accountNumber,
		AccountTitle:  accountTitle,
		balance:       balanceInCents,
		Status:        status,
		UserID:        userID,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// Balance returns the current balance in cents (for internal use)
func (a *Account) Balance() int64 {
	return a.balance
}

// GetBalance returns the balance as a string with 2 decimal places
func (a *Account) GetBalance() string {
	return FormatCents(a.balance)
}

// IsActive reports whether the account can be shown as open on statements
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}
