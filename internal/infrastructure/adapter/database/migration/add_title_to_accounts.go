package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// AddTitleToAccounts is a migration to add the account_title column to the accounts table
type AddTitleToAccounts struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAddTitleToAccounts creates a new migration instance
func NewAddTitleToAccounts(db *gorm.DB, logger coreport.Logger) *AddTitleToAccounts {
	return &AddTitleToAccounts{
		db:     db,
		logger: logger,
	}
}

// Run executes the migration
func (m *AddTitleToAccounts) Run(ctx context.Context) error {
	m.logger.Info("Adding account_title column to accounts table", nil)

	// Check if the column already exists, the migrator handles dialect differences
	if m.db.WithContext(ctx).Migrator().HasColumn(&model.Account{}, "account_title") {
		m.logger.Info("Column account_title already exists, skipping", nil)
		return nil
	}

	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE accounts ADD COLUMN account_title varchar(255) NOT NULL DEFAULT ''`).Error; err != nil {
		m.logger.Error("Failed to add account_title column", map[string]any{"error": err.Error()})
		return err
	}

	m.logger.Info("Successfully added account_title column to accounts table", nil)
	return nil
}
