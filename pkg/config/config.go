package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// DBConfig holds database configuration. Driver selects the backend:
// "sqlite" (file-backed store, the default) or "postgres".
type DBConfig struct {
	Driver          string
	Path            string // sqlite store file
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ProvisionConfig holds default-row provisioning configuration. Mode selects
// the idempotence policy: "strict" checks the well-known identifiers below,
// "semantic" checks whether any company / any admin-role user exists.
type ProvisionConfig struct {
	Mode          string
	CompanyID     string
	CompanyName   string
	Currency      string
	Timezone      string
	Country       string
	AdminID       string
	AdminUsername string
	AdminEmail    string
	AdminName     string
	AdminPassword string
}

// BackupConfig holds pre-destroy backup configuration
type BackupConfig struct {
	Dir  string
	Skip bool
}

// AppConfig holds general application configuration
type AppConfig struct {
	Env string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Config holds all configuration
type Config struct {
	App       AppConfig
	DB        DBConfig
	Log       LogConfig
	Provision ProvisionConfig
	Backup    BackupConfig
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not returning error as .env file is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	// Initialize config struct with values from environment
	config := &Config{
		App: AppConfig{
			Env: getEnv("APP_ENV", "development"),
		},
		DB: DBConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Path:            getEnv("DB_PATH", "erp.db"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", "erp"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Provision: ProvisionConfig{
			Mode:          getEnv("PROVISION_MODE", "strict"),
			CompanyID:     getEnv("DEFAULT_COMPANY_ID", "default-company"),
			CompanyName:   getEnv("DEFAULT_COMPANY_NAME", "Default Company"),
			Currency:      getEnv("DEFAULT_COMPANY_CURRENCY", "USD"),
			Timezone:      getEnv("DEFAULT_COMPANY_TIMEZONE", "UTC"),
			Country:       getEnv("DEFAULT_COMPANY_COUNTRY", ""),
			AdminID:       getEnv("DEFAULT_ADMIN_ID", "default-admin"),
			AdminUsername: getEnv("DEFAULT_ADMIN_USERNAME", "admin"),
			AdminEmail:    getEnv("DEFAULT_ADMIN_EMAIL", "admin@example.com"),
			AdminName:     getEnv("DEFAULT_ADMIN_NAME", "Administrator"),
			AdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "admin"),
		},
		Backup: BackupConfig{
			Dir:  getEnv("BACKUP_DIR", "backups"),
			Skip: getEnvAsBool("BACKUP_SKIP", false),
		},
	}

	return config, nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("environment", c.App.Env),
		zap.String("db_driver", c.DB.Driver),
		zap.String("db_path", c.DB.Path),
		zap.String("db_host", c.DB.Host),
		zap.String("db_name", c.DB.DBName),
		zap.String("provision_mode", c.Provision.Mode),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as booleans
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
