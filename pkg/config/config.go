package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database holds PostgreSQL connection settings
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// JWT holds token signing settings
type JWT struct {
	Secret           string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	InvitationExpiry time.Duration
}

// Mail holds SMTP settings for invitation delivery
type Mail struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// Config is the process-wide configuration, loaded once at startup
type Config struct {
	HTTPPort        string
	Environment     string
	LogLevel        string
	CORSOrigins     []string
	Database        Database
	JWT             JWT
	Mail            Mail
	RedisAddr       string
	RedisPassword   string
	KafkaBrokers    []string
	JaegerEndpoint  string
	FrontendURL     string
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// Load reads configuration from environment variables, falling back to
// defaults suitable for local development. A .env file is honored if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "myduka"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWT{
			Secret:           getEnv("JWT_SECRET", "change-this-in-production"),
			AccessTokenTTL:   getDuration("JWT_ACCESS_TTL", 24*time.Hour),
			RefreshTokenTTL:  getDuration("JWT_REFRESH_TTL", 30*24*time.Hour),
			InvitationExpiry: getDuration("INVITATION_EXPIRY", 24*time.Hour),
		},
		Mail: Mail{
			Host:     getEnv("MAIL_HOST", "smtp.gmail.com"),
			Port:     getInt("MAIL_PORT", 587),
			Username: getEnv("MAIL_USERNAME", ""),
			Password: getEnv("MAIL_PASSWORD", ""),
			Sender:   getEnv("MAIL_SENDER", "no-reply@myduka.com"),
		},
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "")),
		JaegerEndpoint:  getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		LoginRateLimit:  getInt("LOGIN_RATE_LIMIT", 20),
		LoginRateWindow: getDuration("LOGIN_RATE_WINDOW", time.Minute),
	}
}

// IsDevelopment reports whether the process runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
