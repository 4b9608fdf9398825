package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// MinJWTSecretBytes is the smallest accepted HS256 signing key (256 bits).
const MinJWTSecretBytes = 32

var ErrJWTSecretTooShort = fmt.Errorf("JWT_SECRET must be at least %d bytes", MinJWTSecretBytes)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Security SecurityConfig
	LogLevel string
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	RequestTimeout   time.Duration
	ShutdownTimeout  time.Duration
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	MigrationsPath  string
}

type JWTConfig struct {
	Secret              []byte
	AccessTokenDuration time.Duration
	Issuer              string
}

// SecurityConfig holds password policy and argon2id cost parameters.
type SecurityConfig struct {
	PasswordMinLength int
	ArgonMemoryKiB    uint32
	ArgonIterations   uint32
	ArgonParallelism  uint8
}

func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Environment:     getEnv("APP_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			RequestTimeout:  getDurationEnv("SERVER_REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "expense_user"),
			Password:        getEnv("DB_PASSWORD", "expense_password"),
			Name:            getEnv("DB_NAME", "expense_tracker"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			AutoMigrate:     getBoolEnv("AUTO_MIGRATE", false),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "db/migrations"),
		},
		Security: SecurityConfig{
			PasswordMinLength: getIntEnv("PASSWORD_MIN_LENGTH", 8),
			ArgonMemoryKiB:    uint32(getIntEnv("ARGON2_MEMORY_KIB", 19*1024)),
			ArgonIterations:   uint32(getIntEnv("ARGON2_ITERATIONS", 2)),
			ArgonParallelism:  uint8(getIntEnv("ARGON2_PARALLELISM", 1)),
		},
		JWT: JWTConfig{
			AccessTokenDuration: getDurationEnv("JWT_EXPIRATION", 24*time.Hour),
			Issuer:              getEnv("JWT_ISSUER", "expense-tracker"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()

	secret, err := config.loadJWTSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to load JWT secret: %w", err)
	}
	config.JWT.Secret = secret

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL returns the connection string in the postgres:// form golang-migrate expects.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

// SlogLevel maps LOG_LEVEL onto a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadJWTSecret resolves the HS256 signing key.
// Priority order:
// 1. JWT_SECRET, if set, in every environment (must be at least 32 bytes)
// 2. production without JWT_SECRET fails
// 3. development/testing without JWT_SECRET get a random per-process key
func (c *Config) loadJWTSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")

	if secret != "" {
		if len(secret) < MinJWTSecretBytes {
			return nil, ErrJWTSecretTooShort
		}
		return []byte(secret), nil
	}

	if c.IsProduction() {
		return nil, errors.New("JWT_SECRET environment variable must be set in production environments")
	}

	slog.Warn("JWT_SECRET not set, generating a random signing key; issued tokens will not survive a restart")
	return GenerateSecret()
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns default
func (c *Config) loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")

	if corsOrigins == "" {
		if c.IsProduction() {
			slog.Warn("CORS_ALLOW_ORIGINS not set in production environment, defaulting to '*'")
		}
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	return origins
}

// GenerateSecret returns a random key of MinJWTSecretBytes bytes.
func GenerateSecret() ([]byte, error) {
	secret := make([]byte, MinJWTSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	return secret, nil
}
