package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/account-opening-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-opening-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-opening-service/internal/domain/port/persistence"
	usecaseport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/usecase"
)

// Service implements the account use cases on top of the unit of work
type Service struct {
	uow          persistence.UnitOfWork
	validator    *SubmissionValidator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		validator:    NewSubmissionValidator(),
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// OpenAccount validates the submission, generates a fresh account identifier
// and persists the user and the account in one storage transaction. The user
// insert is conflict-tolerant: when a row with the submitted ID already
// exists it is reused as-is and the submitted profile data is discarded.
func (s *Service) OpenAccount(ctx context.Context, req usecaseport.OpenAccountRequest) (*usecaseport.OpenAccountResult, error) {
	if err := s.validator.ValidateSubmission(req); err != nil {
		s.logger.Warn("Account opening rejected by validation", map[string]any{
			"account_number": req.AccountNumber,
			"error":          err.Error(),
		})
		return nil, err
	}

	balanceInCents, err := entity.ParseAmount(req.CurrentBalance)
	if err != nil {
		return nil, err
	}

	user, err := entity.NewUser(
		req.User.ID,
		req.User.FirstName,
		req.User.LastName,
		req.User.Email,
		req.User.ProfilePicURL,
		req.User.PhoneNumber,
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	// The identifier is assigned here on every call. A client that echoes a
	// previous submission still produces a brand new account row.
	accountID := uuid.NewString()

	account, err := entity.NewAccount(
		accountID,
		req.AccountNumber,
		req.AccountTitle,
		balanceInCents,
		req.Status,
		user.ID,
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, errs.NewOpenAccountError(req.AccountNumber, user.ID, "could not start storage transaction", err)
	}

	userRepo := s.uow.GetUserRepository(txCtx)
	userCreated, err := userRepo.CreateIfAbsent(txCtx, user)
	if err != nil {
		s.rollback(txCtx)
		return nil, errs.NewOpenAccountError(req.AccountNumber, user.ID, "could not store user", err)
	}

	accountRepo := s.uow.GetAccountRepository(txCtx)
	if err := accountRepo.Create(txCtx, account); err != nil {
		s.rollback(txCtx)
		return nil, errs.NewOpenAccountError(req.AccountNumber, user.ID, "could not store account", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		s.rollback(txCtx)
		return nil, errs.NewOpenAccountError(req.AccountNumber, user.ID, "could not commit storage transaction", err)
	}

	s.logger.Info("Account opened", map[string]any{
		"account_id":     account.ID,
		"account_number": account.AccountNumber,
		"user_id":        user.ID,
		"user_created":   userCreated,
	})

	return &usecaseport.OpenAccountResult{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		UserID:        user.ID,
		UserCreated:   userCreated,
	}, nil
}

// GetUserAccounts lists the accounts owned by a user, newest first
func (s *Service) GetUserAccounts(ctx context.Context, userID string) ([]usecaseport.AccountSummary, error) {
	userRepo := s.uow.GetUserRepository(ctx)
	if _, err := userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	accountRepo := s.uow.GetAccountRepository(ctx)
	accounts, err := accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]usecaseport.AccountSummary, 0, len(accounts))
	for _, acc := range accounts {
		summaries = append(summaries, usecaseport.AccountSummary{
			AccountID:     acc.ID,
			AccountNumber: acc.AccountNumber,
			AccountTitle:  acc.AccountTitle,
			Balance:       acc.GetBalance(),
			Status:        acc.Status,
			OpenedAt:      acc.CreatedAt,
		})
	}

	return summaries, nil
}

// ValidateOpenAccountRequest validates an incoming opening submission
// without touching storage
func (s *Service) ValidateOpenAccountRequest(req usecaseport.OpenAccountRequest) error {
	return s.validator.ValidateSubmission(req)
}

// rollback reverts the transaction, keeping the original failure as the
// caller's error even when the rollback itself misbehaves
func (s *Service) rollback(txCtx context.Context) {
	if err := s.uow.Rollback(txCtx); err != nil {
		s.logger.Warn("Rollback after failed account opening reported an error", map[string]any{
			"error": err.Error(),
		})
	}
}
