package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "products.json", config.ProductsFile)
	assert.Equal(t, 1800*time.Second, config.CheckInterval)
	assert.Equal(t, 15*time.Second, config.FetchTimeout)
	assert.Equal(t, ":5000", config.HTTPAddr)
	assert.Equal(t, "", config.RedisAddr)
	assert.Equal(t, "price_events", config.RedisStream)
	assert.Equal(t, 500, config.RedisStreamMaxLength)
	assert.False(t, config.NotificationsEnabled())

	// Test with environment variables
	t.Setenv("PRODUCTS_FILE", "/var/lib/pricewatcher/products.json")
	t.Setenv("CHECK_INTERVAL_SECONDS", "60")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "5")
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("REDIS_ADDR", "redis.example.com:6379")
	t.Setenv("REDIS_DB", "1")
	t.Setenv("REDIS_STREAM", "events")
	t.Setenv("MEMCACHE_ADDR", "memcache.example.com:11211")

	config = LoadConfig()
	assert.Equal(t, "/var/lib/pricewatcher/products.json", config.ProductsFile)
	assert.Equal(t, 60*time.Second, config.CheckInterval)
	assert.Equal(t, 5*time.Second, config.FetchTimeout)
	assert.Equal(t, ":8080", config.HTTPAddr)
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)
	assert.Equal(t, 1, config.RedisDB)
	assert.Equal(t, "events", config.RedisStream)
	assert.Equal(t, "memcache.example.com:11211", config.MemcacheAddr)
	assert.True(t, config.NotificationsEnabled())
}

func TestValidate(t *testing.T) {
	config := LoadConfig()
	assert.NoError(t, config.Validate())

	invalid := config
	invalid.ProductsFile = ""
	assert.Error(t, invalid.Validate())

	invalid = config
	invalid.CheckInterval = 0
	assert.Error(t, invalid.Validate())

	invalid = config
	invalid.FetchTimeout = -1 * time.Second
	assert.Error(t, invalid.Validate())

	invalid = config
	invalid.HTTPAddr = ""
	assert.Error(t, invalid.Validate())

	// Telegram credentials must be set together
	invalid = config
	invalid.TelegramBotToken = "token"
	invalid.TelegramChatID = ""
	assert.Error(t, invalid.Validate())

	invalid = config
	invalid.RedisAddr = "localhost:6379"
	invalid.RedisStreamMaxLength = 0
	assert.Error(t, invalid.Validate())
}
