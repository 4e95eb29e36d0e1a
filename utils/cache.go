// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"fixpoint/config"

	"github.com/go-redis/redis/v8"
)

// SessionCacheClient is the dedicated client for booking session storage.
var SessionCacheClient *redis.Client

// InitSessionCache initializes the Redis client used by the Redis-backed
// session store (DB from AppConfig).
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SessionCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Session Cache): %v", err)
	}
}

// GetSessionCacheClient returns the Redis client for session storage.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}
