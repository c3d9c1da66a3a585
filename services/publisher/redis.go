package publisher

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	apperrors "sjsage522/pricewatcher/pkg/errors"
)

// RedisPublisher implements Publisher using a Redis stream. The stream is
// capped with approximate MaxLen trimming so it never grows unbounded.
type RedisPublisher struct {
	client    *redis.Client
	stream    string
	maxLength int
}

var _ Publisher = (*RedisPublisher)(nil)

// NewRedisPublisher creates a new Redis stream publisher
func NewRedisPublisher(addr string, db int, stream string, maxLength int) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisPublisher{
		client:    client,
		stream:    stream,
		maxLength: maxLength,
	}
}

// Publish appends the JSON-encoded event to the stream
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return apperrors.NewNotification("redis", "failed to encode event", err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: int64(p.maxLength),
		Approx: true,
		Values: map[string]interface{}{
			"event": data,
		},
	}).Err()
	if err != nil {
		return apperrors.NewNotification("redis", "failed to publish event", err)
	}
	return nil
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
