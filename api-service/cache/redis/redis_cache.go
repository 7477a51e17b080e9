package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/arunvm123/bookingportal/api-service/model"
	"github.com/redis/go-redis/v9"
)

const eventListKey = "events"

type RedisCacheRepository struct {
	client *redis.Client
}

func NewRedisCacheRepository(ctx context.Context, redisURL, password string, db int) (*RedisCacheRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: password,
		DB:       db,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCacheRepositoryWithClient(client), nil
}

// NewRedisCacheRepositoryWithClient wraps an existing client
func NewRedisCacheRepositoryWithClient(client *redis.Client) *RedisCacheRepository {
	return &RedisCacheRepository{client: client}
}

// Event list caching
func (r *RedisCacheRepository) GetEventList(ctx context.Context) ([]model.EventResponse, error) {
	listData, err := r.client.Get(ctx, eventListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var events []model.EventResponse
	if err := json.Unmarshal(listData, &events); err != nil {
		return nil, fmt.Errorf("failed to decode cached events: %w", err)
	}
	if events == nil {
		events = []model.EventResponse{}
	}
	return events, nil
}

func (r *RedisCacheRepository) SetEventList(ctx context.Context, events []model.EventResponse, ttl time.Duration) error {
	listData, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, eventListKey, listData, ttl).Err()
}

func (r *RedisCacheRepository) InvalidateEventList(ctx context.Context) error {
	return r.client.Del(ctx, eventListKey).Err()
}

// Health check
func (r *RedisCacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCacheRepository) Close() error {
	return r.client.Close()
}
