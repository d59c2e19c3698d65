package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Dan9191/budget-advisor/internal/models"
)

// Config holds application configuration
type Config struct {
	Port          string
	DBConn        string
	LogLevel      string
	JWTSecret     string
	HMACSecret    string
	EncryptionKey []byte

	AIURL       string
	AIKey       string
	AIModel     string
	AITimeout   time.Duration
	AIMaxTokens int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	AlertSchedule     string
	DefaultThresholds models.Thresholds
	HistoryLimit      int
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBConn:        getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=advisor sslmode=disable"),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		HMACSecret:    getEnv("HMAC_SECRET", "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"),
		AIURL:         getEnv("AI_API_URL", "https://api.openai.com/v1/chat/completions"),
		AIKey:         getEnv("AI_API_KEY", ""),
		AIModel:       getEnv("AI_MODEL", "gpt-4o-mini"),
		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      getEnv("SMTP_PORT", "1025"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SenderEmail:   getEnv("SENDER_EMAIL", "advisor@localhost"),
		AlertSchedule: getEnv("ALERT_SCHEDULE", "0 8 * * *"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.HMACSecret == "" {
		return nil, fmt.Errorf("HMAC_SECRET is required")
	}

	key, err := hex.DecodeString(getEnv("ENCRYPTION_KEY", "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"))
	if err != nil {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("ENCRYPTION_KEY must decode to 32 bytes, got %d", len(key))
	}
	cfg.EncryptionKey = key

	if cfg.AITimeout, err = time.ParseDuration(getEnv("AI_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("invalid AI_TIMEOUT: %w", err)
	}
	if cfg.AIMaxTokens, err = getEnvInt("AI_MAX_TOKENS", 500); err != nil {
		return nil, err
	}
	if cfg.HistoryLimit, err = getEnvInt("HISTORY_LIMIT", 10); err != nil {
		return nil, err
	}

	defaults := models.DefaultThresholds()
	if defaults.SavingsRate, err = getEnvInt("DEFAULT_SAVINGS_THRESHOLD", defaults.SavingsRate); err != nil {
		return nil, err
	}
	if defaults.ExpenseRatio, err = getEnvInt("DEFAULT_EXPENSE_THRESHOLD", defaults.ExpenseRatio); err != nil {
		return nil, err
	}
	if err := ValidateThresholds(defaults); err != nil {
		return nil, err
	}
	cfg.DefaultThresholds = defaults

	return cfg, nil
}

// ValidateThresholds checks that both thresholds are whole percentages
func ValidateThresholds(t models.Thresholds) error {
	if t.SavingsRate < 0 || t.SavingsRate > 100 {
		return fmt.Errorf("savings threshold must be between 0 and 100, got %d", t.SavingsRate)
	}
	if t.ExpenseRatio < 0 || t.ExpenseRatio > 100 {
		return fmt.Errorf("expense threshold must be between 0 and 100, got %d", t.ExpenseRatio)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return i, nil
}
