package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest         = 4000
	CodeInvalidAccountTitle    = 4001
	CodeInvalidAccountNumber   = 4002
	CodeInvalidAmount          = 4003
	CodeInvalidStatus          = 4004
	CodeInvalidUserID          = 4005
	CodeInvalidEmail           = 4006
	CodeMissingUser            = 4007
	CodeUserNotFound           = 4040
	CodeAccountNotFound        = 4041
	CodeDuplicateAccountNumber = 4090
	CodeDuplicateUser          = 4091
	CodeConstraintViolation    = 4092

	// 5xxx - Server errors
	CodeInternalServer       = 5000
	CodeDirectoryUnavailable = 5020
	CodeDatabaseConnection   = 5030
)

// Base error types
var (
	// ErrInvalidAccountTitle is returned when the account title is empty
	ErrInvalidAccountTitle = errors.New("account title cannot be empty")

	// ErrInvalidAccountNumber is returned when the account number is empty
	ErrInvalidAccountNumber = errors.New("account number cannot be empty")

	// ErrInvalidAccountID is returned when the account identifier is empty
	ErrInvalidAccountID = errors.New("account ID cannot be empty")

	// ErrInvalidAmount is returned when the balance amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when the balance amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidStatus is returned when the account status is not one of the allowed values
	ErrInvalidStatus = errors.New("invalid account status")

	// ErrInvalidUserID is returned when the user identifier is empty
	ErrInvalidUserID = errors.New("user ID cannot be empty")

	// ErrInvalidEmail is returned when the user email is missing or malformed
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrMissingUser is returned when the submission carries no user
	ErrMissingUser = errors.New("user data is required")

	// ErrInvalidTransactionID is returned when the transaction ID is empty
	ErrInvalidTransactionID = errors.New("transaction ID cannot be empty")

	// ErrInvalidTransactionType is returned when the movement type is not one of the allowed values
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrAccountNotFound is returned when the requested account doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccountNumber is returned when an account with the same number already exists
	ErrDuplicateAccountNumber = errors.New("account with this number already exists")

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDirectoryUnavailable is returned when the corporate directory cannot be reached
	ErrDirectoryUnavailable = errors.New("directory service unavailable")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAccountTitle):
		return CodeInvalidAccountTitle
	case errors.Is(err, ErrInvalidAccountNumber):
		return CodeInvalidAccountNumber
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidStatus):
		return CodeInvalidStatus
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidEmail):
		return CodeInvalidEmail
	case errors.Is(err, ErrMissingUser):
		return CodeMissingUser
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrDuplicateAccountNumber):
		return CodeDuplicateAccountNumber
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrDirectoryUnavailable):
		return CodeDirectoryUnavailable
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	default:
		return CodeInternalServer
	}
}

// ValidationError represents a submission field that failed validation
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"field":      e.Field,
		"reason":     e.Reason,
		"error_code": ErrorCode(e.Err),
	}
}

// NewValidationError creates a field validation error wrapping the matching sentinel
func NewValidationError(field, reason string, err error) error {
	return &ValidationError{Field: field, Reason: reason, Err: err}
}

// OpenAccountError represents a failure while opening an account
type OpenAccountError struct {
	AccountNumber string
	UserID        string
	Reason        string
	Err           error
}

// Error implements the error interface for OpenAccountError
func (e *OpenAccountError) Error() string {
	return fmt.Sprintf("open account failed for number %s (user: %s): %s - %v",
		e.AccountNumber, e.UserID, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *OpenAccountError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *OpenAccountError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "open_account_error",
		"account_number": e.AccountNumber,
		"user_id":        e.UserID,
		"reason":         e.Reason,
		"error":          e.Err.Error(),
		"error_code":     ErrorCode(e.Err),
	}
}

// NewOpenAccountError creates a detailed account opening error
func NewOpenAccountError(accountNumber, userID, reason string, err error) error {
	return &OpenAccountError{
		AccountNumber: accountNumber,
		UserID:        userID,
		Reason:        reason,
		Err:           err,
	}
}

// DuplicateAccountNumberError provides detailed information about account number conflicts
type DuplicateAccountNumberError struct {
	AccountNumber string
	UserID        string
}

// Error implements the error interface
func (e *DuplicateAccountNumberError) Error() string {
	return fmt.Sprintf("duplicate account number detected: %s submitted for user %s",
		e.AccountNumber, e.UserID)
}

// Is checks if the target error is an ErrDuplicateAccountNumber
func (e *DuplicateAccountNumberError) Is(target error) bool {
	return target == ErrDuplicateAccountNumber
}

// LogFields returns a map of fields for structured logging
func (e *DuplicateAccountNumberError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "duplicate_account_number",
		"account_number": e.AccountNumber,
		"user_id":        e.UserID,
		"error_code":     CodeDuplicateAccountNumber,
	}
}

// NewDuplicateAccountNumberError creates a new detailed account number conflict error
func NewDuplicateAccountNumberError(accountNumber, userID string) error {
	return &DuplicateAccountNumberError{
		AccountNumber: accountNumber,
		UserID:        userID,
	}
}

// DirectoryError provides detailed information about directory lookup failures
type DirectoryError struct {
	Endpoint   string
	StatusCode int
}

// Error implements the error interface
func (e *DirectoryError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("directory lookup failed: %s unreachable", e.Endpoint)
	}
	return fmt.Sprintf("directory lookup failed: %s returned status %d", e.Endpoint, e.StatusCode)
}

// Is checks if the target error is an ErrDirectoryUnavailable
func (e *DirectoryError) Is(target error) bool {
	return target == ErrDirectoryUnavailable
}

// LogFields returns a map of fields for structured logging
func (e *DirectoryError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "directory_error",
		"endpoint":    e.Endpoint,
		"status_code": e.StatusCode,
		"error_code":  CodeDirectoryUnavailable,
	}
}

// NewDirectoryError creates a new detailed directory lookup error
func NewDirectoryError(endpoint string, statusCode int) error {
	return &DirectoryError{Endpoint: endpoint, StatusCode: statusCode}
}

// IsValidationError checks if the error is any submission validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAccountTitle) ||
		errors.Is(err, ErrInvalidAccountNumber) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrMissingUser)
}

// IsDuplicateAccountNumberError checks if the error is an account number conflict
func IsDuplicateAccountNumberError(err error) bool {
	return errors.Is(err, ErrDuplicateAccountNumber)
}

// IsUserNotFoundError checks if the error is a user not found error
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAccountNotFound)
}

// IsDirectoryUnavailableError checks if the error is a directory availability error
func IsDirectoryUnavailableError(err error) bool {
	return errors.Is(err, ErrDirectoryUnavailable)
}
