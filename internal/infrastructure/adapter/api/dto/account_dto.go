package dto

import (
	"encoding/json"
	"time"

	"github.com/amirhossein-jamali/account-opening-service/internal/domain/entity"
)

// OpenAccountUserRequest carries the nested user of an opening submission
type OpenAccountUserRequest struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	ProfilePicURL string `json:"profilePicUrl"`
	PhoneNumber   string `json:"phoneNumber"`
}

// OpenAccountRequest represents the API request for opening an account.
// currentBalance binds as json.Number so the submitted amount reaches the
// service as its literal text and never passes through a float. accountStatus
// accepts the names "Active"/"InActive" as well as their integer values.
type OpenAccountRequest struct {
	AccountTitle   string                  `json:"accountTitle"`
	AccountNumber  string                  `json:"accountNumber"`
	CurrentBalance json.Number             `json:"currentBalance"`
	AccountStatus  entity.AccountStatus    `json:"accountStatus"`
	User           *OpenAccountUserRequest `json:"user"`
}

// OpenAccountResponse represents the API response for a successful opening
type OpenAccountResponse struct {
	Message       string `json:"message"`
	AccountID     string `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
	UserID        string `json:"userId"`
	UserCreated   bool   `json:"userCreated"`
}

// AccountResponse represents one account in a user's listing
type AccountResponse struct {
	AccountID     string               `json:"accountId"`
	AccountNumber string               `json:"accountNumber"`
	AccountTitle  string               `json:"accountTitle"`
	Balance       string               `json:"balance"`
	AccountStatus entity.AccountStatus `json:"accountStatus"`
	OpenedAt      time.Time            `json:"openedAt"`
}

// UserAccountsResponse wraps the accounts owned by one user
type UserAccountsResponse struct {
	UserID   string            `json:"userId"`
	Accounts []AccountResponse `json:"accounts"`
}
