package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rmitchellscott/monodither/internal/config"
	"github.com/rmitchellscott/monodither/internal/logging"
)

// TypeNone disables run history.
const TypeNone = "none"

// MemoryDataDir keeps the SQLite database in memory.
const MemoryDataDir = ":memory:"

var DB *gorm.DB

// Initialize opens the configured database and runs migrations. With
// DB_TYPE=none it returns a nil *gorm.DB and no error.
func Initialize(cfg config.DatabaseConfig, logLevel string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Type {
	case TypeNone:
		logging.InfoWithComponent(logging.ComponentDatabase, "Run history disabled")
		return nil, nil
	case "postgres":
		db, err = initPostgres(cfg, logLevel)
	case "sqlite":
		db, err = initSQLite(cfg, logLevel)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	DB = db
	logging.InfoWithComponent(logging.ComponentDatabase, "Database initialized", "type", cfg.Type)
	return db, nil
}

// initPostgres initializes PostgreSQL connection
func initPostgres(cfg config.DatabaseConfig, logLevel string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// initSQLite initializes SQLite connection
func initSQLite(cfg config.DatabaseConfig, logLevel string) (*gorm.DB, error) {
	dsn := "file::memory:"
	if cfg.DataDir != MemoryDataDir {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dsn = filepath.Join(cfg.DataDir, "monodither.db") + "?_pragma=journal_mode(WAL)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite doesn't support concurrent writes, and each in-memory
	// connection would get its own database.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}

// gormLogger routes gorm's logs through the structured logger.
func gormLogger(logLevel string) logger.Interface {
	level := logger.Warn
	if logging.ParseLevel(logLevel) == slog.LevelDebug {
		level = logger.Info
	}

	return logger.New(
		slog.NewLogLogger(logging.Logger().With("component", logging.ComponentDatabase).Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// GetDB returns the database opened by Initialize, or nil.
func GetDB() *gorm.DB {
	return DB
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	DB = nil
	return sqlDB.Close()
}
