package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This test requires a running Redis instance
// If Redis is not available, the test will be skipped
func TestRedisPublisher(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 0})
	defer client.Close()

	if _, err := client.Ping(ctx).Result(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	const stream = "test_price_events"
	client.Del(ctx, stream)

	p := NewRedisPublisher("localhost:6379", 0, stream, 10)
	defer p.Close()

	price := 900.0
	oldPrice := 1000.0
	drop := 100.0
	err := p.Publish(ctx, Event{
		Type:       EventDrop,
		ProductID:  "p1",
		Name:       "Keyboard",
		URL:        "https://example.com/item",
		Price:      &price,
		OldPrice:   &oldPrice,
		DropAmount: &drop,
		At:         time.Now(),
	})
	require.NoError(t, err)

	messages, err := client.XRange(ctx, stream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, messages, 1)

	var got Event
	require.NoError(t, json.Unmarshal([]byte(messages[0].Values["event"].(string)), &got))
	assert.Equal(t, EventDrop, got.Type)
	assert.Equal(t, "p1", got.ProductID)
	assert.Equal(t, 900.0, *got.Price)
	assert.Equal(t, 100.0, *got.DropAmount)

	client.Del(ctx, stream)
}
