package database

import (
	"fmt"

	"github.com/LARRYDMO/Job-portal-website/pkg/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteConnection opens a file-backed SQLite database with foreign keys
// and WAL enabled.
func NewSQLiteConnection(path, logLevel string) (*gorm.DB, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), newGormConfig(logLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows one writer at a time
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	logger.Log.Info("Database connection established", "driver", "sqlite", "path", path)
	return db, nil
}
