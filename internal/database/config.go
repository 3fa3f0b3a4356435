package database

import (
	"fmt"
	"time"

	"gemtrade/internal/config"
)

// Driver names accepted by NewManager.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds database configuration
type Config struct {
	Driver      string
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SQLitePath  string
	LockTimeout time.Duration
}

// NewConfig derives the database configuration from the application config.
func NewConfig(cfg *config.Config) *Config {
	return &Config{
		Driver:      cfg.DBDriver,
		Host:        cfg.DBHost,
		Port:        cfg.DBPort,
		User:        cfg.DBUser,
		Password:    cfg.DBPassword,
		DBName:      cfg.DBName,
		SSLMode:     cfg.DBSSLMode,
		SQLitePath:  cfg.SQLitePath,
		LockTimeout: cfg.DBLockTimeout,
	}
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MigrateURL returns the postgres:// URL golang-migrate expects.
func (c *Config) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// SQLiteDSN returns the sqlite file DSN with a busy timeout so concurrent
// writers wait instead of failing immediately.
func (c *Config) SQLiteDSN() string {
	return fmt.Sprintf("%s?_busy_timeout=%d&_foreign_keys=on", c.SQLitePath, c.busyTimeoutMillis())
}

func (c *Config) busyTimeoutMillis() int64 {
	if c.LockTimeout <= 0 {
		return 5000
	}
	return c.LockTimeout.Milliseconds()
}
