package directory

import (
	"context"

	"github.com/amirhossein-jamali/account-opening-service/internal/domain/entity"
)

// Gateway defines read access to the corporate directory that supplies
// account holder candidates. Implementations may cache; callers must treat
// results as a snapshot.
type Gateway interface {
	// FetchUsers returns the directory entries visible to the opening form
	//
	// Possible errors:
	// - ErrDirectoryUnavailable: If the directory cannot be reached or
	//   answers with a non-success status
	FetchUsers(ctx context.Context) ([]entity.DirectoryUser, error)
}
