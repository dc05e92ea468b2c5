package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const historyTTL = 2 * time.Minute

var client *redis.Client

// Init initializes the Redis connection. The server runs fine without
// Redis; every helper degrades to a miss when the client is nil.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// HistoryKey builds the cache key for one user's history page. The
// filter is hashed so arbitrary search text stays out of the keyspace.
func HistoryKey(userID int, filterFingerprint string) string {
	h := sha256.Sum256([]byte(filterFingerprint))
	return fmt.Sprintf("history:%d:%s", userID, hex.EncodeToString(h[:])[:32])
}

// GetCached returns cached data for a key.
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL.
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// CacheHistory stores a rendered history page for its default TTL.
func CacheHistory(ctx context.Context, key string, data []byte) {
	SetCached(ctx, key, data, historyTTL)
}

// InvalidatePattern removes all keys matching a glob pattern.
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateUserHistory clears every cached history page for a user.
// Called after any bill, order or transaction write since all three
// feed the merged history and the balance snapshot it carries.
func InvalidateUserHistory(ctx context.Context, userID int) {
	InvalidatePattern(ctx, fmt.Sprintf("history:%d:*", userID))
}

// IsHealthy returns true if the Redis connection is working.
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
