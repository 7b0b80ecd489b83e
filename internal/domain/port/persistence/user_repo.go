package persistence

import (
	"context"

	"github.com/amirhossein-jamali/account-opening-service/internal/domain/entity"
)

// UserRepository defines the methods needed to resolve and store account
// holders. There is deliberately no Update: profile data submitted for an
// already known user is discarded, never merged.
type UserRepository interface {
	// GetByID retrieves a user by their directory identifier
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// CreateIfAbsent inserts the user unless a row with the same ID already
	// exists, in which case the stored row is left untouched. The insert and
	// the existence check are a single statement, so two submissions racing
	// on the same new user cannot both insert.
	// Returns true when this call created the row.
	//
	// Possible errors:
	// - ErrConstraintViolation: If user data violates a database constraint
	// - ErrDatabaseConnection: If database connection fails
	CreateIfAbsent(ctx context.Context, user *entity.User) (bool, error)
}
