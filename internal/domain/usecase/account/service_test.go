package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/account-opening-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-opening-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-opening-service/internal/domain/port/persistence"
	usecaseport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/usecase"
)

// fixedTimeProvider returns the same instant on every call
type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

func (p *fixedTimeProvider) Since(t time.Time) coreport.Duration {
	return coreport.Duration(p.now.Sub(t))
}

func (p *fixedTimeProvider) Sleep(coreport.Duration) {}

func (p *fixedTimeProvider) WithTimeout(ctx context.Context, _ coreport.Duration) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}

// nopLogger discards everything
type nopLogger struct{}

func (nopLogger) SetLevel(coreport.LogLevel)   {}
func (nopLogger) GetLevel() coreport.LogLevel  { return coreport.LogLevelInfo }
func (nopLogger) Debug(string, map[string]any) {}
func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Warn(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}
func (nopLogger) Flush() error                 { return nil }

// mockUserRepo records CreateIfAbsent calls and delegates to pluggable funcs
type mockUserRepo struct {
	getByIDFn        func(ctx context.Context, id string) (*entity.User, error)
	createIfAbsentFn func(ctx context.Context, user *entity.User) (bool, error)
	created          []*entity.User
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, errs.ErrUserNotFound
}

func (m *mockUserRepo) CreateIfAbsent(ctx context.Context, user *entity.User) (bool, error) {
	m.created = append(m.created, user)
	if m.createIfAbsentFn != nil {
		return m.createIfAbsentFn(ctx, user)
	}
	return true, nil
}

// mockAccountRepo records Create calls and delegates to pluggable funcs
type mockAccountRepo struct {
	createFn      func(ctx context.Context, account *entity.Account) error
	getByUserIDFn func(ctx context.Context, userID string) ([]*entity.Account, error)
	created       []*entity.Account
}

func (m *mockAccountRepo) Create(ctx context.Context, account *entity.Account) error {
	m.created = append(m.created, account)
	if m.createFn != nil {
		return m.createFn(ctx, account)
	}
	return nil
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return nil, errs.ErrAccountNotFound
}

func (m *mockAccountRepo) GetByUserID(ctx context.Context, userID string) ([]*entity.Account, error) {
	if m.getByUserIDFn != nil {
		return m.getByUserIDFn(ctx, userID)
	}
	return nil, nil
}

// mockUnitOfWork counts transaction calls so tests can assert the
// begin/commit/rollback choreography
type mockUnitOfWork struct {
	users    *mockUserRepo
	accounts *mockAccountRepo

	beginErr  error
	commitErr error

	beginCount    int
	commitCount   int
	rollbackCount int
}

func newMockUnitOfWork() *mockUnitOfWork {
	return &mockUnitOfWork{
		users:    &mockUserRepo{},
		accounts: &mockAccountRepo{},
	}
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	m.beginCount++
	if m.beginErr != nil {
		return ctx, m.beginErr
	}
	return ctx, nil
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	m.commitCount++
	return m.commitErr
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	m.rollbackCount++
	return nil
}

func (m *mockUnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return m.users
}

func (m *mockUnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return m.accounts
}

func newTestService(uow persistence.UnitOfWork) *Service {
	tp := &fixedTimeProvider{now: time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewAccountService(uow, tp, nopLogger{})
}

func validRequest() usecaseport.OpenAccountRequest {
	return usecaseport.OpenAccountRequest{
		AccountTitle:   "Savings",
		AccountNumber:  "ACC-1001",
		CurrentBalance: "250.75",
		Status:         entity.AccountStatusActive,
		User: &usecaseport.OpenAccountUser{
			ID:        "usr-1",
			FirstName: "Alice",
			LastName:  "Johnson",
			Email:     "alice.johnson@example.com",
		},
	}
}

func TestOpenAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Opens account and creates the user on first sight", func(t *testing.T) {
		// Setup mocks
		uow := newMockUnitOfWork()
		service := newTestService(uow)

		// Execute
		result, err := service.OpenAccount(ctx, validRequest())

		// Assertions
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "ACC-1001", result.AccountNumber)
		assert.Equal(t, "usr-1", result.UserID)
		assert.True(t, result.UserCreated)

		// The account id is freshly generated, never taken from the caller
		_, parseErr := uuid.Parse(result.AccountID)
		assert.NoError(t, parseErr)

		// Exactly one user insert and one account insert in one transaction
		require.Len(t, uow.users.created, 1)
		assert.Equal(t, "usr-1", uow.users.created[0].ID)
		assert.Equal(t, "alice.johnson@example.com", uow.users.created[0].Email)

		require.Len(t, uow.accounts.created, 1)
		account := uow.accounts.created[0]
		assert.Equal(t, result.AccountID, account.ID)
		assert.Equal(t, "ACC-1001", account.AccountNumber)
		assert.Equal(t, "Savings", account.AccountTitle)
		assert.Equal(t, int64(25075), account.Balance())
		assert.Equal(t, entity.AccountStatusActive, account.Status)
		assert.Equal(t, "usr-1", account.UserID)

		assert.Equal(t, 1, uow.beginCount)
		assert.Equal(t, 1, uow.commitCount)
		assert.Equal(t, 0, uow.rollbackCount)
	})

	t.Run("Reuses an existing user without touching the stored row", func(t *testing.T) {
		// Setup mocks
		uow := newMockUnitOfWork()
		uow.users.createIfAbsentFn = func(ctx context.Context, user *entity.User) (bool, error) {
			return false, nil
		}
		service := newTestService(uow)

		// The submission carries changed profile data for a known user
		req := validRequest()
		req.User.FirstName = "Alicia"
		req.User.Email = "new.address@example.com"

		// Execute
		result, err := service.OpenAccount(ctx, req)

		// Assertions
		require.NoError(t, err)
		assert.False(t, result.UserCreated)
		assert.Equal(t, "usr-1", result.UserID)

		// One conflict-tolerant insert, no update path exists at all
		assert.Len(t, uow.users.created, 1)

		// The account still links to the existing user id
		require.Len(t, uow.accounts.created, 1)
		assert.Equal(t, "usr-1", uow.accounts.created[0].UserID)
		assert.Equal(t, 1, uow.commitCount)
	})

	t.Run("Same submission twice opens two distinct accounts", func(t *testing.T) {
		// Setup mocks
		uow := newMockUnitOfWork()
		service := newTestService(uow)
		req := validRequest()

		// Execute twice with the identical payload
		first, err := service.OpenAccount(ctx, req)
		require.NoError(t, err)
		second, err := service.OpenAccount(ctx, req)
		require.NoError(t, err)

		// Assertions
		assert.NotEqual(t, first.AccountID, second.AccountID)
		require.Len(t, uow.accounts.created, 2)
		assert.NotEqual(t, uow.accounts.created[0].ID, uow.accounts.created[1].ID)
		assert.Equal(t, 2, uow.commitCount)
	})

	t.Run("Empty balance defaults to zero cents", func(t *testing.T) {
		// Setup mocks
		uow := newMockUnitOfWork()
		service := newTestService(uow)

		req := validRequest()
		req.CurrentBalance = ""

		// Execute
		_, err := service.OpenAccount(ctx, req)

		// Assertions
		require.NoError(t, err)
		require.Len(t, uow.accounts.created, 1)
		assert.Equal(t, int64(0), uow.accounts.created[0].Balance())
	})

	t.Run("Validation rejects before any storage work", func(t *testing.T) {
		testCases := []struct {
			name        string
			mutate      func(req *usecaseport.OpenAccountRequest)
			expectedErr error
		}{
			{"missing user", func(req *usecaseport.OpenAccountRequest) { req.User = nil }, errs.ErrMissingUser},
			{"empty title", func(req *usecaseport.OpenAccountRequest) { req.AccountTitle = "" }, errs.ErrInvalidAccountTitle},
			{"blank title", func(req *usecaseport.OpenAccountRequest) { req.AccountTitle = "   " }, errs.ErrInvalidAccountTitle},
			{"empty account number", func(req *usecaseport.OpenAccountRequest) { req.AccountNumber = "" }, errs.ErrInvalidAccountNumber},
			{"empty user id", func(req *usecaseport.OpenAccountRequest) { req.User.ID = "" }, errs.ErrInvalidUserID},
			{"empty email", func(req *usecaseport.OpenAccountRequest) { req.User.Email = "" }, errs.ErrInvalidEmail},
			{"malformed email", func(req *usecaseport.OpenAccountRequest) { req.User.Email = "not-an-email" }, errs.ErrInvalidEmail},
			{"invalid status", func(req *usecaseport.OpenAccountRequest) { req.Status = entity.AccountStatus(9) }, errs.ErrInvalidStatus},
			{"negative balance", func(req *usecaseport.OpenAccountRequest) { req.CurrentBalance = "-5.00" }, errs.ErrNegativeAmount},
			{"malformed balance", func(req *usecaseport.OpenAccountRequest) { req.CurrentBalance = "10.123" }, errs.ErrInvalidAmount},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				// Setup mocks
				uow := newMockUnitOfWork()
				service := newTestService(uow)

				req := validRequest()
				tc.mutate(&req)

				// Execute
				result, err := service.OpenAccount(ctx, req)

				// Assertions
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, result)

				// The rejection happens before the transaction is opened
				assert.Equal(t, 0, uow.beginCount)
				assert.Empty(t, uow.users.created)
				assert.Empty(t, uow.accounts.created)
			})
		}
	})

	t.Run("User insert failure rolls the transaction back", func(t *testing.T) {
		// Setup mocks
		uow := newMockUnitOfWork()
		storageErr := errs.ErrDatabaseConnection
		uow.users.createIfAbsentFn = func(ctx context.Context, user *entity.User) (bool, error) {
			return false, storageErr
		}
		service := newTestService(uow)

		// Execute
		result, err := service.OpenAccount(ctx, validRequest())

		// Assertions
		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, storageErr)

		var openErr *errs.OpenAccountError
		require.True(t, errors.As(err, &openErr))
		assert.Equal(t, "ACC-1001", openErr.AccountNumber)

		assert.Equal(t, 1, uow.rollbackCount)
		assert.Equal(t, 0, uow.commitCount)
		assert.Empty(t, uow.accounts.created)
	})

	t.Run("Account insert failure rolls the transaction back", func(t *testing.T) {
		// Setup mocks
		uow := newMockUnitOfWork()
		uow.accounts.createFn = func(ctx context.Context, account *entity.Account) error {
			return errs.NewDuplicateAccountNumberError(account.AccountNumber, account.UserID)
		}
		service := newTestService(uow)

		// Execute
		result, err := service.OpenAccount(ctx, validRequest())

		// Assertions
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errs.IsDuplicateAccountNumberError(err))
		assert.Equal(t, 1, uow.rollbackCount)
		assert.Equal(t, 0, uow.commitCount)
	})

	t.Run("Commit failure rolls the transaction back", func(t *testing.T) {
		// Setup mocks
		uow := newMockUnitOfWork()
		uow.commitErr = errs.ErrConstraintViolation
		service := newTestService(uow)

		// Execute
		result, err := service.OpenAccount(ctx, validRequest())

		// Assertions
		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
		assert.Equal(t, 1, uow.commitCount)
		assert.Equal(t, 1, uow.rollbackCount)
	})

	t.Run("Begin failure surfaces without rollback", func(t *testing.T) {
		// Setup mocks
		uow := newMockUnitOfWork()
		uow.beginErr = errs.ErrDatabaseConnection
		service := newTestService(uow)

		// Execute
		result, err := service.OpenAccount(ctx, validRequest())

		// Assertions
		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.Equal(t, 0, uow.commitCount)
		assert.Equal(t, 0, uow.rollbackCount)
	})
}

func TestGetUserAccounts(t *testing.T) {
	ctx := context.Background()
	openedAt := time.Date(2023, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Lists the accounts owned by a user", func(t *testing.T) {
		// Setup mocks
		uow := newMockUnitOfWork()
		uow.users.getByIDFn = func(ctx context.Context, id string) (*entity.User, error) {
			return &entity.User{ID: id, Email: "alice@example.com"}, nil
		}
		uow.accounts.getByUserIDFn = func(ctx context.Context, userID string) ([]*entity.Account, error) {
			return []*entity.Account{
				entity.RestoreAccount("acc-2", "ACC-1002", "Checking", 0, entity.AccountStatusActive, userID, openedAt, openedAt),
				entity.RestoreAccount("acc-1", "ACC-1001", "Savings", 25075, entity.AccountStatusInActive, userID, openedAt, openedAt),
			}, nil
		}
		service := newTestService(uow)

		// Execute
		summaries, err := service.GetUserAccounts(ctx, "usr-1")

		// Assertions
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, "acc-2", summaries[0].AccountID)
		assert.Equal(t, "0.00", summaries[0].Balance)
		assert.Equal(t, "acc-1", summaries[1].AccountID)
		assert.Equal(t, "250.75", summaries[1].Balance)
		assert.Equal(t, entity.AccountStatusInActive, summaries[1].Status)
		assert.Equal(t, openedAt, summaries[1].OpenedAt)
	})

	t.Run("Unknown user surfaces not found", func(t *testing.T) {
		// Setup mocks
		uow := newMockUnitOfWork()
		accountsAsked := false
		uow.accounts.getByUserIDFn = func(ctx context.Context, userID string) ([]*entity.Account, error) {
			accountsAsked = true
			return nil, nil
		}
		service := newTestService(uow)

		// Execute
		summaries, err := service.GetUserAccounts(ctx, "missing")

		// Assertions
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		assert.Nil(t, summaries)
		assert.False(t, accountsAsked)
	})

	t.Run("User with no accounts returns an empty list", func(t *testing.T) {
		// Setup mocks
		uow := newMockUnitOfWork()
		uow.users.getByIDFn = func(ctx context.Context, id string) (*entity.User, error) {
			return &entity.User{ID: id, Email: "bob@example.com"}, nil
		}
		service := newTestService(uow)

		// Execute
		summaries, err := service.GetUserAccounts(ctx, "usr-2")

		// Assertions
		require.NoError(t, err)
		assert.NotNil(t, summaries)
		assert.Empty(t, summaries)
	})
}

func TestValidateOpenAccountRequest(t *testing.T) {
	service := newTestService(newMockUnitOfWork())

	assert.NoError(t, service.ValidateOpenAccountRequest(validRequest()))

	req := validRequest()
	req.AccountTitle = ""
	assert.ErrorIs(t, service.ValidateOpenAccountRequest(req), errs.ErrInvalidAccountTitle)
}
