package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisLocationsKey = "emergency:locations"
	redisMaxHistory   = 100
)

// RedisLocationStore keeps the saved-location collection in a Redis list,
// newest first, trimmed to a bounded history.
type RedisLocationStore struct {
	client *redis.Client
}

// NewRedisLocationStore connects to Redis and verifies the connection.
func NewRedisLocationStore(addr, password string, db int) (*RedisLocationStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 10 * time.Second,
		MaxRetries:  3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisLocationStore{client: client}, nil
}

// Save implements LocationStore.
func (s *RedisLocationStore) Save(ctx context.Context, loc SavedLocation) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	if err := s.client.LPush(ctx, redisLocationsKey, data).Err(); err != nil {
		return err
	}
	return s.client.LTrim(ctx, redisLocationsKey, 0, redisMaxHistory-1).Err()
}

// Latest implements LocationStore.
func (s *RedisLocationStore) Latest(ctx context.Context) (SavedLocation, error) {
	raw, err := s.client.LIndex(ctx, redisLocationsKey, 0).Result()
	if errors.Is(err, redis.Nil) {
		return SavedLocation{}, ErrNotFound
	}
	if err != nil {
		return SavedLocation{}, err
	}
	var loc SavedLocation
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return SavedLocation{}, err
	}
	return loc, nil
}

// All implements LocationStore.
func (s *RedisLocationStore) All(ctx context.Context) ([]SavedLocation, error) {
	rows, err := s.client.LRange(ctx, redisLocationsKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]SavedLocation, 0, len(rows))
	for _, raw := range rows {
		var loc SavedLocation
		if err := json.Unmarshal([]byte(raw), &loc); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, nil
}

// Close releases the underlying Redis connection pool.
func (s *RedisLocationStore) Close() error {
	return s.client.Close()
}
