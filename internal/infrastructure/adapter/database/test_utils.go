package database

import (
	"testing"
	"time"

	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenTestDB opens an isolated in-memory database carrying the full schema.
// Every call returns a fresh database, so tests never share state.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every pool connection to :memory: gets its own database, so the pool
	// is pinned to a single connection
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	// sqlite leaves referential integrity off unless asked
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.Transaction{},
	); err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}

	return db
}

// CreateTestUser inserts a user row directly, bypassing the repositories
func CreateTestUser(t *testing.T, db *gorm.DB, id, email string) {
	t.Helper()

	user := model.User{
		ID:        id,
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
}

// CountRows returns the number of rows in the given table
func CountRows(t *testing.T, db *gorm.DB, tableName string) int64 {
	t.Helper()

	var count int64
	if err := db.Table(tableName).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows in %s: %v", tableName, err)
	}
	return count
}
