package config

import (
	"os"
	"strconv"
	"time"

	apperrors "sjsage522/pricewatcher/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Store configuration
	ProductsFile string

	// Monitor configuration
	CheckInterval time.Duration
	FetchTimeout  time.Duration

	// Dashboard configuration
	HTTPAddr string

	// Telegram configuration (optional; missing credentials disable notifications)
	TelegramBotToken string
	TelegramChatID   string
	TelegramAPIURL   string

	// Redis configuration (optional; missing address disables event publishing)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Memcache configuration (optional; missing address falls back to the
	// in-process cooldown cache)
	MemcacheAddr string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	checkInterval, _ := strconv.Atoi(getEnv("CHECK_INTERVAL_SECONDS", "1800"))
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "15"))

	return Config{
		ProductsFile:         getEnv("PRODUCTS_FILE", "products.json"),
		CheckInterval:        time.Duration(checkInterval) * time.Second,
		FetchTimeout:         time.Duration(fetchTimeout) * time.Second,
		HTTPAddr:             getEnv("HTTP_ADDR", ":5000"),
		TelegramBotToken:     getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:       getEnv("TELEGRAM_CHAT_ID", ""),
		TelegramAPIURL:       getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "price_events"),
		RedisStreamMaxLength: streamMaxLen,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		Environment:          getEnv("PRICEWATCHER_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	if c.ProductsFile == "" {
		return apperrors.NewConfiguration("PRODUCTS_FILE must not be empty", nil)
	}
	if c.CheckInterval <= 0 {
		return apperrors.NewConfiguration("CHECK_INTERVAL_SECONDS must be a positive integer", nil)
	}
	if c.FetchTimeout <= 0 {
		return apperrors.NewConfiguration("FETCH_TIMEOUT_SECONDS must be a positive integer", nil)
	}
	if c.HTTPAddr == "" {
		return apperrors.NewConfiguration("HTTP_ADDR must not be empty", nil)
	}
	if (c.TelegramBotToken == "") != (c.TelegramChatID == "") {
		return apperrors.NewConfiguration("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together", nil)
	}
	if c.RedisAddr != "" && c.RedisStreamMaxLength <= 0 {
		return apperrors.NewConfiguration("REDIS_STREAM_MAX_LENGTH must be a positive integer", nil)
	}
	return nil
}

// NotificationsEnabled reports whether Telegram credentials are configured
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
