package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Cooldown CooldownConfig
	Watchdog WatchdogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	// Database is the application database, created on initialization.
	Database string
	// AdminDatabase is the maintenance database used to create, drop and
	// probe the application database.
	AdminDatabase string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// CooldownConfig holds the per-client mutation throttle configuration.
type CooldownConfig struct {
	// TTL is how long a client must wait between mutating requests.
	// Zero disables the cooldown.
	TTL time.Duration
}

// WatchdogConfig holds the connectivity watchdog configuration.
type WatchdogConfig struct {
	// Interval is how often the database is probed.
	Interval time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnvAsInt("DB_PORT", 5432),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", ""),
			Database:      getEnv("DB_NAME", "cantina_escolar"),
			AdminDatabase: getEnv("DB_ADMIN_NAME", "postgres"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Cooldown: CooldownConfig{
			TTL: getEnvAsDuration("COOLDOWN_SECONDS", 2*time.Second),
		},
		Watchdog: WatchdogConfig{
			Interval: getEnvAsDuration("WATCHDOG_INTERVAL_SECONDS", 5*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.AdminDatabase == "" {
		return fmt.Errorf("admin database name is required")
	}

	if c.Cooldown.TTL < 0 {
		return fmt.Errorf("cooldown must not be negative")
	}

	if c.Watchdog.Interval < time.Second {
		return fmt.Errorf("watchdog interval must be at least one second")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// ConnectionString returns the connection string for the application
// database.
func (c *DatabaseConfig) ConnectionString() string {
	return c.connectionString(c.Database)
}

// AdminConnectionString returns the connection string for the maintenance
// database.
func (c *DatabaseConfig) AdminConnectionString() string {
	return c.connectionString(c.AdminDatabase)
}

func (c *DatabaseConfig) connectionString(database string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a number of seconds
// or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
