// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"voltpath/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient holds in-flight onboarding sessions.
	SessionCacheClient *redis.Client
	// StagingCacheClient holds staged checkout hand-off state.
	StagingCacheClient *redis.Client
)

// InitSessionCache initializes the Redis client for onboarding sessions.
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

// GetSessionCacheClient returns the Redis client for onboarding sessions.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitStagingCache initializes the Redis client for checkout staging.
func InitStagingCache() {
	StagingCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisStagingDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := StagingCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Staging Cache): %v", err)
	}
}

// GetStagingCacheClient returns the Redis client for checkout staging.
func GetStagingCacheClient() *redis.Client {
	if StagingCacheClient == nil {
		InitStagingCache()
	}
	return StagingCacheClient
}
