package migration

import (
	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
	"gorm.io/gorm"
)

// AdvancedIndexManager manages PostgreSQL-specific advanced indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateAdvancedIndexes creates advanced PostgreSQL indexes for better performance
func (m *AdvancedIndexManager) CreateAdvancedIndexes() error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	// Create composite index for user_id and status to speed up filtered listings
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_accounts_user_status
		ON accounts (user_id, status)
	`).Error; err != nil {
		m.logger.Error("Failed to create user_status composite index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Create partial index for active accounts
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_accounts_active
		ON accounts (user_id, created_at)
		WHERE status = 0
	`).Error; err != nil {
		m.logger.Error("Failed to create active accounts partial index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Create index on users.email for directory reconciliation queries
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_users_email
		ON users (email)
	`).Error; err != nil {
		m.logger.Error("Failed to create index on users.email", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Create BRIN index for transaction_date (more efficient for temporal data)
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_transaction_date_brin
		ON transactions USING BRIN (transaction_date)
		WITH (pages_per_range = 32)
	`).Error; err != nil {
		m.logger.Error("Failed to create BRIN index on transaction_date", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// CreatePerformanceTweaks applies PostgreSQL performance tweaks
func (m *AdvancedIndexManager) CreatePerformanceTweaks() error {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// Set fillfactor for accounts table to reduce page splits
	if err := m.db.Exec(`
		ALTER TABLE accounts SET (fillfactor = 90)
	`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for accounts table", map[string]any{
			"error": err.Error(),
		})
		// Don't return error as this is not critical
	}

	// Set statistics target for better query planning
	if err := m.db.Exec(`
		ALTER TABLE accounts ALTER COLUMN user_id SET STATISTICS 1000
	`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for user_id", map[string]any{
			"error": err.Error(),
		})
		// Don't return error as this is not critical
	}

	m.logger.Info("PostgreSQL performance tweaks applied successfully", nil)
	return nil
}
