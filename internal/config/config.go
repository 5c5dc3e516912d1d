package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend names accepted by SESSION_BACKEND and DATA_BACKEND.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config holds all configuration for the API
type Config struct {
	Port string

	Auth          AuthConfig
	Session       SessionConfig
	Data          DataConfig
	Mongo         MongoConfig
	Redis         RedisConfig
	CORS          CORSConfig
	Logging       LoggingConfig
	Notifications NotificationConfig
}

// AuthConfig holds token signing and signup settings
type AuthConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	AdminKeyHash string // bcrypt hash; empty disables admin signup
}

// SessionConfig selects where session flags live
type SessionConfig struct {
	Backend string
	Prefix  string
}

// DataConfig selects where dashboard collections live
type DataConfig struct {
	Backend string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Address string
}

type CORSConfig struct {
	AllowOrigins []string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// NotificationConfig holds the SMS and email provider settings.
// Empty TextbeltKey or SMTPHost leaves that channel log-only.
type NotificationConfig struct {
	TextbeltKey string
	TextbeltURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
}

// Load reads .env files, then the environment, and validates the result.
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	cfg := &Config{
		Port: getEnv("API_PORT", "8080"),
		Auth: AuthConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			TokenTTL:     ttl,
			AdminKeyHash: os.Getenv("ADMIN_KEY_HASH"),
		},
		Session: SessionConfig{
			Backend: strings.ToLower(getEnv("SESSION_BACKEND", BackendMemory)),
			Prefix:  getEnv("SESSION_PREFIX", "healthease:session"),
		},
		Data: DataConfig{
			Backend: strings.ToLower(getEnv("DATA_BACKEND", BackendMemory)),
		},
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGO_URI"),
			Database: getEnv("MONGO_DATABASE", "healthease"),
		},
		Redis: RedisConfig{
			Address: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		CORS: CORSConfig{
			AllowOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Notifications: NotificationConfig{
			TextbeltKey: os.Getenv("TEXTBELT_API_KEY"),
			TextbeltURL: getEnv("TEXTBELT_URL", "https://textbelt.com/text"),

			SMTPHost:     os.Getenv("SMTP_HOST"),
			SMTPPort:     smtpPort,
			SMTPUsername: os.Getenv("SMTP_USERNAME"),
			SMTPPassword: os.Getenv("SMTP_PASSWORD"),
			EmailFrom:    getEnv("EMAIL_FROM", "no-reply@healthease.local"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is not configured")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	switch c.Session.Backend {
	case BackendMemory, BackendRedis, BackendMongo:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	switch c.Data.Backend {
	case BackendMemory, BackendMongo:
	default:
		return fmt.Errorf("unknown DATA_BACKEND %q", c.Data.Backend)
	}
	if c.NeedsMongo() && c.Mongo.URI == "" {
		return errors.New("MONGO_URI is required for the mongo backend")
	}
	return nil
}

// NeedsMongo reports whether any backend is Mongo.
func (c *Config) NeedsMongo() bool {
	return c.Session.Backend == BackendMongo || c.Data.Backend == BackendMongo
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
