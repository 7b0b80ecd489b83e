package handler

import (
	"errors"
	"net/http"
	"strings"

	domainerr "github.com/amirhossein-jamali/account-opening-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-opening-service/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountUseCase usecase.AccountUseCase
	logger         coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(
	accountUseCase usecase.AccountUseCase,
	logger coreport.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

// OpenAccount handles the POST /Accounts/OpenAccount endpoint.
// The contract is fixed by the submitting form: 200 with a success message,
// 400 with an error code and message on any failure, validation and storage
// alike.
func (h *AccountHandler) OpenAccount(c *gin.Context) {
	// Parse request body
	var req dto.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid open account request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	// Map to domain request
	openReq := usecase.OpenAccountRequest{
		AccountTitle:   req.AccountTitle,
		AccountNumber:  req.AccountNumber,
		CurrentBalance: req.CurrentBalance.String(),
		Status:         req.AccountStatus,
	}
	if req.User != nil {
		openReq.User = &usecase.OpenAccountUser{
			ID:            req.User.ID,
			FirstName:     req.User.FirstName,
			LastName:      req.User.LastName,
			Email:         req.User.Email,
			ProfilePicURL: req.User.ProfilePicURL,
			PhoneNumber:   req.User.PhoneNumber,
		}
	}

	// Open the account
	result, err := h.accountUseCase.OpenAccount(c.Request.Context(), openReq)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: openAccountErrorMessage(err),
		})
		return
	}

	// Success response
	c.JSON(http.StatusOK, dto.OpenAccountResponse{
		Message:       "New account added successfully",
		AccountID:     result.AccountID,
		AccountNumber: result.AccountNumber,
		UserID:        result.UserID,
		UserCreated:   result.UserCreated,
	})
}

// openAccountErrorMessage maps a failure to its client-facing message,
// keeping storage internals out of responses
func openAccountErrorMessage(err error) string {
	var validationErr *domainerr.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	if domainerr.IsValidationError(err) {
		return err.Error()
	}
	if domainerr.IsDuplicateAccountNumberError(err) {
		return "An account with this account number already exists"
	}
	return "Could not open the account, please try again"
}

// GetUserAccounts handles the GET /Accounts/User/{userId} endpoint
func (h *AccountHandler) GetUserAccounts(c *gin.Context) {
	// Extract user ID from path
	userID := c.Param("userId")
	if strings.TrimSpace(userID) == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidUserID),
			Message: "Invalid user ID format",
		})
		return
	}

	// List the user's accounts
	summaries, err := h.accountUseCase.GetUserAccounts(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMessage := "Internal server error"

		// Map domain errors to HTTP status codes
		if errors.Is(err, domainerr.ErrUserNotFound) {
			statusCode = http.StatusNotFound
			errorMessage = "User not found"
		}

		h.logger.Error("Error listing user accounts", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})

		c.JSON(statusCode, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: errorMessage,
		})
		return
	}

	// Return success response
	accounts := make([]dto.AccountResponse, 0, len(summaries))
	for _, summary := range summaries {
		accounts = append(accounts, dto.AccountResponse{
			AccountID:     summary.AccountID,
			AccountNumber: summary.AccountNumber,
			AccountTitle:  summary.AccountTitle,
			Balance:       summary.Balance,
			AccountStatus: summary.Status,
			OpenedAt:      summary.OpenedAt,
		})
	}

	c.JSON(http.StatusOK, dto.UserAccountsResponse{
		UserID:   userID,
		Accounts: accounts,
	})
}
