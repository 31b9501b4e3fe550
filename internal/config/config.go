// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development; secrets
// (JWT signing key, SMTP credentials) are always injected, never embedded.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL used in outbound email links.
	BaseURL string

	// AllowedOrigins is the list of origins permitted to call the API
	// cross-origin (the SPA frontend).
	AllowedOrigins []string

	// Database holds MariaDB connection settings.
	Database DatabaseConfig

	// Redis holds Redis connection settings.
	Redis RedisConfig

	// JWT holds token signing settings.
	JWT JWTConfig

	// SMTP holds outbound mail settings.
	SMTP SMTPConfig
}

// DatabaseConfig holds MariaDB connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars so container
// orchestrators can manage each independently. If DATABASE_URL is set, it
// takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MariaDB address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	// User is the MariaDB username (default: "tracend").
	User string

	// Password is the MariaDB password (default: "tracend").
	Password string

	// Name is the database name (default: "tracend").
	Name string

	// MigrationsPath is the directory holding SQL migration files.
	MigrationsPath string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is how long a connection can be reused.
	ConnMaxLifetime time.Duration
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, it is returned as-is. Otherwise the DSN is built from the individual
// Host/User/Password/Name fields using the driver's Config.FormatDSN()
// to safely handle special characters in passwords.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
// Allows users to set DB_HOST=mydb (gets :3306) or DB_HOST=mydb:3307 (as-is).
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// JWTConfig holds token signing settings. Secret, Issuer, and Audience are
// deployment configuration; tokens signed with one deployment's settings are
// rejected by another's.
type JWTConfig struct {
	// Secret is the HS256 signing key. Required — Load fails without it.
	Secret string

	// Issuer is the expected "iss" claim value.
	Issuer string

	// Audience is the expected "aud" claim value.
	Audience string

	// TTL is the token lifetime from issuance (default: 1h).
	TTL time.Duration
}

// SMTPConfig holds outbound mail settings. Credentials come from the
// environment only.
type SMTPConfig struct {
	// Host is the SMTP relay hostname. Empty means mail is not configured.
	Host string

	// Port is the SMTP relay port (default: 587).
	Port int

	// Username authenticates against the relay. Empty skips AUTH.
	Username string

	// Password authenticates against the relay.
	Password string

	// FromAddress is the envelope and header From address.
	FromAddress string

	// FromName is the display name on the From header.
	FromName string

	// Encryption selects the transport: "starttls" (default), "ssl", or "none".
	Encryption string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present. Returns
// an error if required variables are missing — a missing JWT secret is a
// deployment fault and the server must not start without it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using process environment")
	}

	cfg := &Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnvInt("PORT", 8080),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "tracend"),
			Password:        getEnv("DB_PASSWORD", "tracend"),
			Name:            getEnv("DB_NAME", "tracend"),
			MigrationsPath:  getEnv("DB_MIGRATIONS_PATH", "migrations"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},

		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", ""),
			Issuer:   getEnv("JWT_ISSUER", "tracend"),
			Audience: getEnv("JWT_AUDIENCE", "tracend-api"),
			TTL:      getEnvDuration("JWT_TTL", time.Hour),
		},

		SMTP: SMTPConfig{
			Host:        getEnv("SMTP_HOST", ""),
			Port:        getEnvInt("SMTP_PORT", 587),
			Username:    getEnv("SMTP_USERNAME", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			FromAddress: getEnv("SMTP_FROM_ADDRESS", "no-reply@tracend.local"),
			FromName:    getEnv("SMTP_FROM_NAME", "Tracend"),
			Encryption:  getEnv("SMTP_ENCRYPTION", "starttls"),
		},
	}

	// The signing key gates every authenticated request. Refusing to start
	// without one beats issuing tokens signed with an empty key.
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if !cfg.IsDevelopment() && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// splitCSV splits a comma-separated env value into trimmed, non-empty parts.
func splitCSV(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "1h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
