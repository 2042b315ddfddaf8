// Package testdb prepares databases for package tests: an in-memory SQLite
// gorm database for the ORM backed stores and, when reachable, the Postgres
// instance from appsettings.TESTING.yaml for the raw SQL stores.
package testdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"advisor/src/config"
	"advisor/src/database"
	"advisor/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDB returns a fresh, migrated in-memory database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get SQL DB from GORM DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}, &models.Transaction{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// FindTransactions returns every stored transaction for the (user, product,
// date) key.
func FindTransactions(t *testing.T, db *gorm.DB, userARN int64, product string, date time.Time) []models.Transaction {
	t.Helper()

	var transactions []models.Transaction
	err := db.Where("user_arn = ? AND product = ? AND date_of_transaction = ?", userARN, product, date).
		Find(&transactions).Error
	if err != nil {
		t.Fatalf("Failed to query transactions: %v", err)
	}
	return transactions
}

// SetupPostgresPool connects to the TESTING Postgres database and truncates
// the tables used by the raw SQL repositories. The test is skipped when the
// database is not reachable.
func SetupPostgresPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	cfg, err := loadTestConfig()
	if err != nil {
		t.Skipf("Skipping Postgres test, configuration unavailable: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Databases.SQL.DSN())
	if err != nil {
		t.Skipf("Skipping Postgres test, cannot create pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Skipf("Skipping Postgres test, database not reachable: %v", err)
	}
	t.Cleanup(pool.Close)

	serviceRoot, err := getServiceRoot()
	if err != nil {
		t.Fatalf("Failed to get service root path: %v", err)
	}
	if err := database.Migrate(stdlib.OpenDBFromPool(pool), filepath.Join(serviceRoot, "migrations")); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	TruncateTables(t, pool)
	return pool
}

// TruncateTables truncates all tables in the test database
func TruncateTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	tables := []string{
		"request_logs",
	}

	for _, table := range tables {
		_, err := pool.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			t.Fatalf("Failed to truncate table %s: %v", table, err)
		}
	}
}

func loadTestConfig() (*config.Config, error) {
	serviceRoot, err := getServiceRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to get service root path: %w", err)
	}
	return config.LoadConfig(filepath.Join(serviceRoot, "settings"), "TESTING")
}

// getServiceRoot returns the absolute path to the directory holding go.mod
func getServiceRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd, nil
		}

		parent := filepath.Dir(wd)
		if parent == wd {
			return "", fmt.Errorf("go.mod not found in any parent directory")
		}
		wd = parent
	}
}
