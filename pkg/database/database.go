package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"erp-datastore/internal/apperrors"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the database connection configuration
type Config struct {
	Driver          string
	Path            string // sqlite store file, or ":memory:"
	DSN             string // postgres connection string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// Open opens a database connection with the provided configuration and
// returns it for explicit injection; there is no package-level instance.
func Open(config Config) (*gorm.DB, error) {
	// Set default log level if not specified
	logLevel := config.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var db *gorm.DB
	var err error

	switch config.Driver {
	case DriverSQLite, "":
		// Foreign-key enforcement in SQLite is a per-connection setting.
		// Carrying it in the DSN makes every pooled connection re-assert it
		// at the acquisition boundary.
		db, err = gorm.Open(sqlite.Open(sqliteDSN(config.Path)), gormConfig)
	case DriverPostgres:
		pgConfig := postgres.Config{
			DSN:                  config.DSN,
			PreferSimpleProtocol: true, // Disables implicit prepared statement usage
		}
		db, err = gorm.Open(postgres.New(pgConfig), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	if isMemorySQLite(config) {
		// A pooled second connection to :memory: would see an empty store.
		sqlDB.SetMaxOpenConns(1)
	} else {
		if config.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(config.MaxIdleConns)
		}
		if config.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(config.MaxOpenConns)
		}
		if config.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
		}
	}

	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// EnableReferentialIntegrity asserts that foreign-key enforcement is active
// on the write path. It must be invoked after Open and before any mutating
// operation. For SQLite the DSN pragma is verified on a live connection; for
// PostgreSQL constraints are durable DDL and the assertion passes once the
// connection answers.
func EnableReferentialIntegrity(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case DriverSQLite:
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return fmt.Errorf("enable foreign keys: %w", err)
		}
		var enabled int
		if err := db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error; err != nil {
			return fmt.Errorf("probe foreign keys: %w", err)
		}
		if enabled != 1 {
			return apperrors.ErrIntegrityDisabled
		}
		return nil
	case DriverPostgres:
		var one int
		if err := db.Raw("SELECT 1").Scan(&one).Error; err != nil {
			return fmt.Errorf("probe connection: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported database driver %q", db.Dialector.Name())
	}
}

func sqliteDSN(path string) string {
	if path == "" {
		path = "erp.db"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func isMemorySQLite(config Config) bool {
	if config.Driver != DriverSQLite && config.Driver != "" {
		return false
	}
	return strings.Contains(config.Path, ":memory:")
}
