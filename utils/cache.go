// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"roombook/config"

	"github.com/go-redis/redis/v8"
)

var (
	// LockCacheClient backs the per-room commit lock.
	LockCacheClient *redis.Client
	// SessionCacheClient stores conversational booking sessions.
	SessionCacheClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// GetLockCacheClient returns the Redis client used for room locks.
func GetLockCacheClient() *redis.Client {
	if LockCacheClient == nil {
		LockCacheClient = newRedisClient(config.AppConfig.RedisLockDB, "Lock")
	}
	return LockCacheClient
}

// GetSessionCacheClient returns the Redis client used for booking sessions.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		SessionCacheClient = newRedisClient(config.AppConfig.RedisSessionDB, "Session")
	}
	return SessionCacheClient
}

// RedisClients lists the clients that have been initialized.
func RedisClients() []*redis.Client {
	var out []*redis.Client
	for _, c := range []*redis.Client{LockCacheClient, SessionCacheClient} {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
