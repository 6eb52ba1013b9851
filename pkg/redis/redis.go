package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/akeren/waitlist-api/pkg/circuitbreaker"
	goredis "github.com/go-redis/redis/v8"
)

type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RedisCache implements the config.Cache interface. Every command runs behind
// a circuit breaker so a dead Redis fails fast; callers treat cache errors as
// a signal to fall back, not as request failures.
type RedisCache struct {
	client  *goredis.Client
	breaker circuitbreaker.CircuitBreaker
}

func NewRedisCache(cfg *Config) (*RedisCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{
		client:  client,
		breaker: circuitbreaker.NewCircuitBreaker(nil),
	}, nil
}

func (rc *RedisCache) Get(ctx context.Context, key string) (string, error) {
	var value string

	err := rc.breaker.Call(func() error {
		v, err := rc.client.Get(ctx, key).Result()
		if err == goredis.Nil {
			return nil
		}
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if err != nil {
		return "", err
	}

	return value, nil
}

func (rc *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return rc.breaker.Call(func() error {
		return rc.client.Set(ctx, key, value, ttl).Err()
	})
}

func (rc *RedisCache) Delete(ctx context.Context, key string) error {
	return rc.breaker.Call(func() error {
		return rc.client.Del(ctx, key).Err()
	})
}

func (rc *RedisCache) Ping(ctx context.Context) error {
	return rc.breaker.Call(func() error {
		return rc.client.Ping(ctx).Err()
	})
}

func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// GetClient exposes the underlying client for components that need raw Redis
// commands, such as the sliding-window rate limiter.
func (rc *RedisCache) GetClient() *goredis.Client {
	return rc.client
}
