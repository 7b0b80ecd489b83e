package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/amirhossein-jamali/account-opening-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-opening-service/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// DirectoryHandler handles directory lookup HTTP requests
type DirectoryHandler struct {
	directoryUseCase usecase.DirectoryUseCase
	logger           coreport.Logger
}

// NewDirectoryHandler creates a new directory handler instance
func NewDirectoryHandler(
	directoryUseCase usecase.DirectoryUseCase,
	logger coreport.Logger,
) *DirectoryHandler {
	return &DirectoryHandler{
		directoryUseCase: directoryUseCase,
		logger:           logger,
	}
}

// GetUsers handles the GET /DirectoryUsers endpoint
func (h *DirectoryHandler) GetUsers(c *gin.Context) {
	users, err := h.directoryUseCase.GetUsers(c.Request.Context())
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMessage := "Internal server error"

		// Map domain errors to HTTP status codes
		if errors.Is(err, domainerr.ErrDirectoryUnavailable) {
			statusCode = http.StatusBadGateway
			errorMessage = "Directory service is unavailable"
		}

		h.logger.Error("Error fetching directory users", map[string]any{
			"error": err.Error(),
		})

		c.JSON(statusCode, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: errorMessage,
		})
		return
	}

	// Return success response
	responses := make([]dto.DirectoryUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.DirectoryUserResponse{
			ID:          user.ID,
			Surname:     user.Surname,
			GivenName:   user.GivenName,
			Mail:        user.Mail,
			DisplayName: user.DisplayName,
		})
	}

	c.JSON(http.StatusOK, responses)
}
