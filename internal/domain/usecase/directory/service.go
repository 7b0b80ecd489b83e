package directory

import (
	"context"

	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
	directoryport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/directory"
	usecaseport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/usecase"
)

// Service implements directory lookups for the opening form's user picker
type Service struct {
	gateway directoryport.Gateway
	logger  coreport.Logger
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(gateway directoryport.Gateway, logger coreport.Logger) *Service {
	return &Service{
		gateway: gateway,
		logger:  logger,
	}
}

// GetUsers fetches the directory entries offered as account holder
// candidates. Directory failures never affect stored data; the caller just
// sees the lookup error.
func (s *Service) GetUsers(ctx context.Context) ([]usecaseport.DirectoryUserResponse, error) {
	users, err := s.gateway.FetchUsers(ctx)
	if err != nil {
		s.logger.Error("Directory lookup failed", map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}

	responses := make([]usecaseport.DirectoryUserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, usecaseport.DirectoryUserResponse{
			ID:          u.ID,
			Surname:     u.Surname,
			GivenName:   u.GivenName,
			Mail:        u.Mail,
			DisplayName: u.DisplayName,
		})
	}

	return responses, nil
}
