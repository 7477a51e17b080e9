package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/arunvm123/bookingportal/web-client/tokenstore"
	"github.com/redis/go-redis/v9"
)

// RedisTokenStore keeps the token in a shared Redis so several terminals on
// one account see the same session.
type RedisTokenStore struct {
	client *redis.Client
	prefix string
}

func NewRedisTokenStore(ctx context.Context, redisURL, password string, db int, prefix string) (*RedisTokenStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: password,
		DB:       db,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisTokenStoreWithClient(client, prefix), nil
}

func NewRedisTokenStoreWithClient(client *redis.Client, prefix string) *RedisTokenStore {
	return &RedisTokenStore{client: client, prefix: prefix}
}

// Cache key generator
func (r *RedisTokenStore) tokenKey() string {
	if r.prefix == "" {
		return tokenstore.TokenKey
	}
	return fmt.Sprintf("%s:%s", r.prefix, tokenstore.TokenKey)
}

func (r *RedisTokenStore) Load(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, r.tokenKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("loading token: %w", err)
	}
	return token, nil
}

func (r *RedisTokenStore) Save(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, r.tokenKey(), token, 0).Err(); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

func (r *RedisTokenStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.tokenKey()).Err(); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *RedisTokenStore) Close() error {
	return r.client.Close()
}
