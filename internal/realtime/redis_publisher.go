package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher difunde eventos via Redis pub/sub con un envelope JSON.
type RedisPublisher struct {
	client  redisPublisher
	timeout time.Duration
}

// NewRedisPublisher crea un publisher sobre un cliente Redis ya conectado.
// El handle se crea una sola vez en el arranque y se inyecta; no es un global.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	if client == nil {
		return nil
	}
	return &RedisPublisher{
		client:  client,
		timeout: 500 * time.Millisecond,
	}
}

type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
	SentAt  string `json:"sent_at"`
}

func (p *RedisPublisher) Publish(ctx context.Context, channel, event string, payload any) error {
	if p == nil || p.client == nil {
		return nil
	}
	body, err := json.Marshal(envelope{
		Event:   event,
		Payload: payload,
		SentAt:  time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.client.Publish(ctx, channel, body).Err()
}
