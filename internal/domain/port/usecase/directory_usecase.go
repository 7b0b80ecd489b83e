package usecase

import (
	"context"
)

// DirectoryUserResponse represents a directory entry as served to the
// opening form's user picker
type DirectoryUserResponse struct {
	ID          string `json:"id"`
	Surname     string `json:"surname"`
	GivenName   string `json:"givenName"`
	Mail        string `json:"mail"`
	DisplayName string `json:"displayName"`
}

// DirectoryUseCase defines methods for corporate directory lookups
type DirectoryUseCase interface {
	// GetUsers fetches the directory entries offered as account holder
	// candidates. This is the method behind GET /DirectoryUsers.
	GetUsers(ctx context.Context) ([]DirectoryUserResponse, error)
}
