package notify

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Publisher delivers an encoded batch of splits.
type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
	Close() error
}

type redisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(ctx context.Context, cfg *Config) (*redisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable connect to redis %s: %w", cfg.RedisAddr, err)
	}
	return &redisPublisher{client: client, channel: cfg.RedisChannel}, nil
}

func (p *redisPublisher) Publish(ctx context.Context, payload []byte) error {
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish to %s: %w", p.channel, err)
	}
	return nil
}

func (p *redisPublisher) Close() error {
	return p.client.Close()
}
