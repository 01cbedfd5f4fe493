package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the cache blob under a single Redis key. Redis
// provides durability across process restarts without local disk;
// expiry and eviction stay with the in-memory cache, so no Redis TTL
// is set on the key.
type RedisStore struct {
	Client *redis.Client
	Key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "geocode_cache"
	}
	return &RedisStore{Client: client, Key: key}
}

// Load reads the persisted cache blob. A missing key yields an empty map.
func (s *RedisStore) Load(ctx context.Context) (map[string]Entry, error) {
	raw, err := s.Client.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return map[string]Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis store: get %q: %w", s.Key, err)
	}

	var entries map[string]Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("redis store: parse %q: %w", s.Key, err)
	}
	if entries == nil {
		entries = map[string]Entry{}
	}

	return entries, nil
}

// Save replaces the persisted blob wholesale.
func (s *RedisStore) Save(ctx context.Context, entries map[string]Entry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("redis store: marshal entries: %w", err)
	}

	if err := s.Client.Set(ctx, s.Key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis store: set %q: %w", s.Key, err)
	}

	return nil
}
