package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Cache key building
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// UserCacheKey builds the cache key for a user's flattened detail record
func UserCacheKey(userID uint) string {
	return "user:details:" + strconv.Itoa(int(userID))
}

// PackageListCacheKey builds the cache key for a page of the package listing
func PackageListCacheKey(page, limit int, searchTerm string) string {
	return "packages:page:" + strconv.Itoa(page) + ":limit:" + strconv.Itoa(limit) + ":q:" + searchTerm
}

// InvalidatePackageListCache drops cached package listing pages after a write
// (simple version: delete the first 5 pages of the unfiltered listing)
func InvalidatePackageListCache(ctx context.Context, rdb *redis.Client) {
	for i := 1; i <= 5; i++ {
		_ = DeleteCache(ctx, rdb, PackageListCacheKey(i, 5, "")) // Delete cache entries
	}
}
