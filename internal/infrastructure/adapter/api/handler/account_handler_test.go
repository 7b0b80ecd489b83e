package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/account-opening-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-opening-service/internal/domain/error"
	"github.com/amirhossein-jamali/account-opening-service/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockAccountUseCase struct {
	openAccountFn     func(ctx context.Context, req usecase.OpenAccountRequest) (*usecase.OpenAccountResult, error)
	getUserAccountsFn func(ctx context.Context, userID string) ([]usecase.AccountSummary, error)
}

func (m *mockAccountUseCase) OpenAccount(ctx context.Context, req usecase.OpenAccountRequest) (*usecase.OpenAccountResult, error) {
	return m.openAccountFn(ctx, req)
}

func (m *mockAccountUseCase) GetUserAccounts(ctx context.Context, userID string) ([]usecase.AccountSummary, error) {
	return m.getUserAccountsFn(ctx, userID)
}

func (m *mockAccountUseCase) ValidateOpenAccountRequest(req usecase.OpenAccountRequest) error {
	return nil
}

func newAccountRouter(uc usecase.AccountUseCase) *gin.Engine {
	h := NewAccountHandler(uc, logger.NewNoopLogger())
	router := gin.New()
	router.POST("/Accounts/OpenAccount", h.OpenAccount)
	router.GET("/Accounts/User/:userId", h.GetUserAccounts)
	return router
}

func postOpenAccount(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, "/Accounts/OpenAccount", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestOpenAccountEndpoint(t *testing.T) {
	openingBody := `{
		"accountTitle": "Savings",
		"accountNumber": "ACC-1001",
		"currentBalance": 250.75,
		"accountStatus": "Active",
		"user": {
			"id": "usr-1",
			"firstName": "Alice",
			"lastName": "Johnson",
			"email": "alice.johnson@example.com"
		}
	}`

	t.Run("Successful opening returns the fixed message", func(t *testing.T) {
		// Setup mocks
		var gotReq usecase.OpenAccountRequest
		uc := &mockAccountUseCase{
			openAccountFn: func(ctx context.Context, req usecase.OpenAccountRequest) (*usecase.OpenAccountResult, error) {
				gotReq = req
				return &usecase.OpenAccountResult{
					AccountID:     "3f0e3f9e-4c3a-4a96-9d6e-0d3328f3b8aa",
					AccountNumber: req.AccountNumber,
					UserID:        req.User.ID,
					UserCreated:   true,
				}, nil
			},
		}

		// Execute
		w := postOpenAccount(t, newAccountRouter(uc), openingBody)

		// Assertions
		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.OpenAccountResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "New account added successfully", resp.Message)
		assert.Equal(t, "3f0e3f9e-4c3a-4a96-9d6e-0d3328f3b8aa", resp.AccountID)
		assert.Equal(t, "ACC-1001", resp.AccountNumber)
		assert.Equal(t, "usr-1", resp.UserID)
		assert.True(t, resp.UserCreated)

		// The submitted amount reaches the service as its literal text
		assert.Equal(t, "250.75", gotReq.CurrentBalance)
		assert.Equal(t, entity.AccountStatusActive, gotReq.Status)
		require.NotNil(t, gotReq.User)
		assert.Equal(t, "alice.johnson@example.com", gotReq.User.Email)
	})

	t.Run("Status accepted as integer", func(t *testing.T) {
		// Setup mocks
		var gotStatus entity.AccountStatus
		uc := &mockAccountUseCase{
			openAccountFn: func(ctx context.Context, req usecase.OpenAccountRequest) (*usecase.OpenAccountResult, error) {
				gotStatus = req.Status
				return &usecase.OpenAccountResult{AccountID: "id", AccountNumber: req.AccountNumber, UserID: req.User.ID}, nil
			},
		}

		body := `{
			"accountTitle": "Savings",
			"accountNumber": "ACC-1002",
			"accountStatus": 1,
			"user": {"id": "usr-1", "email": "alice@example.com"}
		}`

		// Execute
		w := postOpenAccount(t, newAccountRouter(uc), body)

		// Assertions
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, entity.AccountStatusInActive, gotStatus)
	})

	t.Run("Malformed JSON is a bad request", func(t *testing.T) {
		// Setup mocks
		called := false
		uc := &mockAccountUseCase{
			openAccountFn: func(ctx context.Context, req usecase.OpenAccountRequest) (*usecase.OpenAccountResult, error) {
				called = true
				return nil, nil
			},
		}

		// Execute
		w := postOpenAccount(t, newAccountRouter(uc), `{"accountTitle": `)

		// Assertions
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called)

		resp := decodeError(t, w)
		assert.Equal(t, errs.CodeInvalidRequest, resp.Code)
		assert.Contains(t, resp.Message, "Invalid request format")
	})

	t.Run("Unknown status spelling is a bad request", func(t *testing.T) {
		// Setup mocks
		uc := &mockAccountUseCase{
			openAccountFn: func(ctx context.Context, req usecase.OpenAccountRequest) (*usecase.OpenAccountResult, error) {
				t.Fatal("use case must not be reached")
				return nil, nil
			},
		}

		body := `{
			"accountTitle": "Savings",
			"accountNumber": "ACC-1003",
			"accountStatus": "Closed",
			"user": {"id": "usr-1", "email": "alice@example.com"}
		}`

		// Execute
		w := postOpenAccount(t, newAccountRouter(uc), body)

		// Assertions
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, errs.CodeInvalidRequest, resp.Code)
	})

	t.Run("Validation failure carries its field message", func(t *testing.T) {
		// Setup mocks
		uc := &mockAccountUseCase{
			openAccountFn: func(ctx context.Context, req usecase.OpenAccountRequest) (*usecase.OpenAccountResult, error) {
				return nil, errs.NewValidationError("accountTitle", "account title is required", errs.ErrInvalidAccountTitle)
			},
		}

		// Execute
		w := postOpenAccount(t, newAccountRouter(uc), openingBody)

		// Assertions
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeError(t, w)
		assert.Equal(t, errs.CodeInvalidAccountTitle, resp.Code)
		assert.Equal(t, "validation failed for accountTitle: account title is required", resp.Message)
	})

	t.Run("Duplicate account number gets the fixed message", func(t *testing.T) {
		// Setup mocks
		uc := &mockAccountUseCase{
			openAccountFn: func(ctx context.Context, req usecase.OpenAccountRequest) (*usecase.OpenAccountResult, error) {
				return nil, errs.NewOpenAccountError(req.AccountNumber, req.User.ID, "could not store account",
					errs.NewDuplicateAccountNumberError(req.AccountNumber, req.User.ID))
			},
		}

		// Execute
		w := postOpenAccount(t, newAccountRouter(uc), openingBody)

		// Assertions
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeError(t, w)
		assert.Equal(t, errs.CodeDuplicateAccountNumber, resp.Code)
		assert.Equal(t, "An account with this account number already exists", resp.Message)
	})

	t.Run("Storage failure hides internals behind a generic message", func(t *testing.T) {
		// Setup mocks
		uc := &mockAccountUseCase{
			openAccountFn: func(ctx context.Context, req usecase.OpenAccountRequest) (*usecase.OpenAccountResult, error) {
				return nil, errs.NewOpenAccountError(req.AccountNumber, req.User.ID, "could not store account", errs.ErrDatabaseConnection)
			},
		}

		// Execute
		w := postOpenAccount(t, newAccountRouter(uc), openingBody)

		// Assertions
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeError(t, w)
		assert.Equal(t, errs.CodeDatabaseConnection, resp.Code)
		assert.Equal(t, "Could not open the account, please try again", resp.Message)
		assert.NotContains(t, resp.Message, "database")
	})
}

func TestGetUserAccountsEndpoint(t *testing.T) {
	openedAt := time.Date(2023, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Lists the user's accounts", func(t *testing.T) {
		// Setup mocks
		uc := &mockAccountUseCase{
			getUserAccountsFn: func(ctx context.Context, userID string) ([]usecase.AccountSummary, error) {
				return []usecase.AccountSummary{
					{
						AccountID:     "acc-1",
						AccountNumber: "ACC-1001",
						AccountTitle:  "Savings",
						Balance:       "250.75",
						Status:        entity.AccountStatusActive,
						OpenedAt:      openedAt,
					},
				}, nil
			},
		}

		// Execute
		req, err := http.NewRequest(http.MethodGet, "/Accounts/User/usr-1", nil)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		newAccountRouter(uc).ServeHTTP(w, req)

		// Assertions
		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.UserAccountsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "usr-1", resp.UserID)
		require.Len(t, resp.Accounts, 1)
		assert.Equal(t, "acc-1", resp.Accounts[0].AccountID)
		assert.Equal(t, "250.75", resp.Accounts[0].Balance)
		assert.Equal(t, entity.AccountStatusActive, resp.Accounts[0].AccountStatus)
	})

	t.Run("Unknown user is not found", func(t *testing.T) {
		// Setup mocks
		uc := &mockAccountUseCase{
			getUserAccountsFn: func(ctx context.Context, userID string) ([]usecase.AccountSummary, error) {
				return nil, errs.ErrUserNotFound
			},
		}

		// Execute
		req, err := http.NewRequest(http.MethodGet, "/Accounts/User/missing", nil)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		newAccountRouter(uc).ServeHTTP(w, req)

		// Assertions
		assert.Equal(t, http.StatusNotFound, w.Code)

		resp := decodeError(t, w)
		assert.Equal(t, errs.CodeUserNotFound, resp.Code)
		assert.Equal(t, "User not found", resp.Message)
	})

	t.Run("Blank user id is a bad request", func(t *testing.T) {
		// Setup mocks
		uc := &mockAccountUseCase{
			getUserAccountsFn: func(ctx context.Context, userID string) ([]usecase.AccountSummary, error) {
				t.Fatal("use case must not be reached")
				return nil, nil
			},
		}

		// Execute
		req, err := http.NewRequest(http.MethodGet, "/Accounts/User/%20", nil)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		newAccountRouter(uc).ServeHTTP(w, req)

		// Assertions
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeError(t, w)
		assert.Equal(t, errs.CodeInvalidUserID, resp.Code)
	})

	t.Run("Storage failure is an internal error", func(t *testing.T) {
		// Setup mocks
		uc := &mockAccountUseCase{
			getUserAccountsFn: func(ctx context.Context, userID string) ([]usecase.AccountSummary, error) {
				return nil, errs.ErrDatabaseConnection
			},
		}

		// Execute
		req, err := http.NewRequest(http.MethodGet, "/Accounts/User/usr-1", nil)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		newAccountRouter(uc).ServeHTTP(w, req)

		// Assertions
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		resp := decodeError(t, w)
		assert.Equal(t, errs.CodeDatabaseConnection, resp.Code)
		assert.Equal(t, "Internal server error", resp.Message)
	})
}
