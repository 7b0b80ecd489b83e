package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/account-opening-service/internal/domain/entity"
)

// OpenAccountUser carries the profile data nested inside an opening
// submission. The ID is the directory identifier chosen on the form.
type OpenAccountUser struct {
	ID            string `json:"id" validate:"required"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email" validate:"required,email"`
	ProfilePicURL string `json:"profilePicUrl"`
	PhoneNumber   string `json:"phoneNumber"`
}

// OpenAccountRequest represents an incoming account opening submission.
// CurrentBalance stays a decimal string until the service converts it to
// cents, so no floating point representation ever touches the amount.
type OpenAccountRequest struct {
	AccountTitle   string               `validate:"required"`
	AccountNumber  string               `validate:"required"`
	CurrentBalance string               `validate:"-"`
	Status         entity.AccountStatus `validate:"-"`
	User           *OpenAccountUser     `validate:"required"`
}

// OpenAccountResult contains info about a successfully opened account
type OpenAccountResult struct {
	AccountID     string `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
	UserID        string `json:"userId"`
	UserCreated   bool   `json:"userCreated"`
}

// AccountSummary represents the standardized account listing response
type AccountSummary struct {
	AccountID     string               `json:"accountId"`
	AccountNumber string               `json:"accountNumber"`
	AccountTitle  string               `json:"accountTitle"`
	Balance       string               `json:"balance"` // Formatted with 2 decimal places
	Status        entity.AccountStatus `json:"accountStatus"`
	OpenedAt      time.Time            `json:"openedAt"`
}

// AccountUseCase defines methods for account-related business operations
type AccountUseCase interface {
	// OpenAccount validates the submission, generates the account identifier
	// and persists the account together with its user in one storage
	// transaction. This is the method behind POST /Accounts/OpenAccount.
	OpenAccount(ctx context.Context, req OpenAccountRequest) (*OpenAccountResult, error)

	// GetUserAccounts lists the accounts owned by a user, newest first.
	// This is the method behind GET /Accounts/User/{userId}.
	GetUserAccounts(ctx context.Context, userID string) ([]AccountSummary, error)

	// ValidateOpenAccountRequest validates an incoming opening submission
	// without touching storage
	ValidateOpenAccountRequest(req OpenAccountRequest) error
}
