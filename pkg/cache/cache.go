// Package cache provides a Redis-backed JSON cache.
//
// All helpers degrade to no-ops when Connect has not been called (or Redis is
// down), so code paths never need a "is caching on" branch.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shashiranjanraj/vypar/config"
)

var RDB *redis.Client
var Ctx = context.Background()

// Connect opens the Redis client using REDIS_ADDR / REDIS_PASSWORD.
func Connect() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
}

// Get unmarshals the cached value under key into dest.
// Returns false on a miss or any error.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, key).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}

	return true
}

// Set marshals value as JSON and stores it under key for ttl.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(Ctx, key, data, ttl).Err()
}

// Forget removes key from the cache.
func Forget(key string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(Ctx, key).Err()
}

// Store adapts the package-level helpers to orm.Cacher.
type Store struct{}

func (Store) Get(key string, dest interface{}) bool                   { return Get(key, dest) }
func (Store) Set(key string, value interface{}, ttl time.Duration) error { return Set(key, value, ttl) }
func (Store) Forget(key string) error                                 { return Forget(key) }
