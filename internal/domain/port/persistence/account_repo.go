package persistence

import (
	"context"

	"github.com/amirhossein-jamali/account-opening-service/internal/domain/entity"
)

// AccountRepository defines the methods to store and read accounts
type AccountRepository interface {
	// Create inserts a freshly opened account. Every call is an insert;
	// the server-generated ID guarantees there is nothing to update.
	//
	// Possible errors:
	// - ErrDuplicateAccountNumber: If an account with the same number exists
	// - ErrUserNotFound: If the owning user row is missing
	// - ErrConstraintViolation: If account data violates a database constraint
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, account *entity.Account) error

	// GetByID retrieves an account with its recorded movements
	//
	// Possible errors:
	// - ErrAccountNotFound: If account with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.Account, error)

	// GetByUserID retrieves all accounts owned by a user, newest first
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	GetByUserID(ctx context.Context, userID string) ([]*entity.Account, error)
}
