package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/account-opening-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-opening-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountRepository implements the persistence.AccountRepository interface using GORM
type AccountRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts an account entity to a database model
func (r *AccountRepository) entityToModel(account *entity.Account) model.Account {
	return model.Account{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		AccountTitle:  account.AccountTitle,
		Balance:       account.Balance(),
		Status:        int(account.Status),
		UserID:        account.UserID,
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}
}

// modelToEntity converts an account model to an entity
func (r *AccountRepository) modelToEntity(accountModel *model.Account) *entity.Account {
	account := entity.RestoreAccount(
		accountModel.ID,
		accountModel.AccountNumber,
		accountModel.AccountTitle,
		accountModel.Balance,
		entity.AccountStatus(accountModel.Status),
		accountModel.UserID,
		accountModel.CreatedAt,
		accountModel.UpdatedAt,
	)

	for i := range accountModel.Transactions {
		txModel := &accountModel.Transactions[i]
		account.Transactions = append(account.Transactions, entity.Transaction{
			ID:              txModel.ID,
			AccountID:       txModel.AccountID,
			Type:            entity.TransactionType(txModel.Type),
			AmountInCents:   txModel.AmountInCents,
			TransactionDate: txModel.TransactionDate,
			CreatedAt:       txModel.CreatedAt,
		})
	}

	return account
}

// handleDatabaseError standardizes database error handling
func (r *AccountRepository) handleDatabaseError(operation string, err error, accountNumber string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"account_number": accountNumber,
		"error":          err.Error(),
	})

	if r.errorClassifier.IsForeignKeyError(err) {
		r.logger.Warn("Account references a missing user", map[string]any{
			"account_number": accountNumber,
		})
		return errs.ErrConstraintViolation
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// handleDuplicateAccountError handles duplicate account number errors specifically
func (r *AccountRepository) handleDuplicateAccountError(account *entity.Account) error {
	r.logger.Warn("Duplicate account number detected", map[string]any{
		"account_number": account.AccountNumber,
		"user_id":        account.UserID,
	})
	return errs.NewDuplicateAccountNumberError(account.AccountNumber, account.UserID)
}

// Create saves a new account row. The unique index on account_number makes
// this call the single arbiter for duplicates: whoever inserts second gets
// the duplicate error back, no prior existence check needed.
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	r.logger.Debug("Creating account", map[string]any{
		"account_id":     account.ID,
		"account_number": account.AccountNumber,
		"user_id":        account.UserID,
	})

	accountModel := r.entityToModel(account)

	// Associations are written by their own repositories, never from here
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(&accountModel)

	if result.Error != nil {
		// Check for duplicate key error
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return r.handleDuplicateAccountError(account)
		}

		return r.handleDatabaseError("creating account", result.Error, account.AccountNumber)
	}

	r.logger.Info("Account created successfully", map[string]any{
		"account_id":     account.ID,
		"account_number": account.AccountNumber,
		"user_id":        account.UserID,
	})
	return nil
}

// GetByID retrieves an account with its transactions
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	r.logger.Debug("Getting account by ID", map[string]any{
		"account_id": id,
	})

	var accountModel model.Account
	result := r.db.WithContext(ctx).
		Preload("Transactions").
		First(&accountModel, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.logger.Warn("Account not found", map[string]any{
				"account_id": id,
			})
			return nil, errs.ErrAccountNotFound
		}
		return nil, r.handleDatabaseError("getting account", result.Error, id)
	}

	account := r.modelToEntity(&accountModel)

	r.logger.Debug("Account retrieved successfully", map[string]any{
		"account_id":     id,
		"account_number": account.AccountNumber,
		"balance":        account.GetBalance(),
	})

	return account, nil
}

// GetByUserID retrieves all accounts belonging to a user, newest first
func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) ([]*entity.Account, error) {
	r.logger.Debug("Getting accounts by user ID", map[string]any{
		"user_id": userID,
	})

	var accountModels []model.Account
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&accountModels)

	if result.Error != nil {
		return nil, r.handleDatabaseError("listing accounts", result.Error, userID)
	}

	accounts := make([]*entity.Account, 0, len(accountModels))
	for i := range accountModels {
		accounts = append(accounts, r.modelToEntity(&accountModels[i]))
	}

	r.logger.Debug("Accounts listed successfully", map[string]any{
		"user_id": userID,
		"count":   len(accounts),
	})

	return accounts, nil
}
