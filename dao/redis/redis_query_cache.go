package redis

import (
	"encoding/json"
	"fmt"
	"log"

	"checkin-server/db"
)

const QUERY_CACHE_KEY_FORMAT_V1 = "query_cache_v1:%s"
const QUERY_CACHE_KEY_PATTERN_V1 = "query_cache_v1:*"

// RedisQueryCache stores serialized query results in Redis, keyed by the
// query fingerprint. The dataset is immutable, so cached entries never go
// stale and carry no TTL.
type RedisQueryCache struct {
	client db.RedisClient
}

// NewRedisQueryCache initializes a RedisQueryCache with the Redis client.
func NewRedisQueryCache(client db.RedisClient) *RedisQueryCache {
	return &RedisQueryCache{client: client}
}

// GetResult looks up a cached result and unmarshals it into value.
// Returns false on a cache miss.
func (c *RedisQueryCache) GetResult(fingerprint string, value interface{}) (bool, error) {
	key := fmt.Sprintf(QUERY_CACHE_KEY_FORMAT_V1, fingerprint)
	str, err := c.client.Get(key)
	if err != nil {
		// Misses and connectivity errors both fall through to recompute.
		return false, nil
	}
	if err := json.Unmarshal([]byte(str), value); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached result for %s: %w", key, err)
	}
	return true, nil
}

// SetResult caches a query result under the fingerprint.
func (c *RedisQueryCache) SetResult(fingerprint string, value interface{}) error {
	key := fmt.Sprintf(QUERY_CACHE_KEY_FORMAT_V1, fingerprint)
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal result for %s: %w", key, err)
	}
	if err := c.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set cached result in redis: %w", err)
	}
	return nil
}

// Flush removes every cached query result, e.g. after loading a new
// dataset file.
func (c *RedisQueryCache) Flush() error {
	keys, err := c.client.Keys(QUERY_CACHE_KEY_PATTERN_V1)
	if err != nil {
		return fmt.Errorf("failed to list query cache keys: %w", err)
	}
	for _, k := range keys {
		if err := c.client.Del(k); err != nil {
			return fmt.Errorf("failed to delete query cache key %s: %w", k, err)
		}
	}
	log.Printf("[RedisQueryCache] Flushed %d cached results", len(keys))
	return nil
}
