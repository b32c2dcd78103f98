package utils

import (
	"context"
	"log"
	"time"

	"coachline/config"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// ContextCacheClient holds per-conversation dialogue state.
var ContextCacheClient *redis.Client

// InitContextCache initializes the Redis client backing conversation context.
func InitContextCache() {
	ContextCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisContextDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ContextCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Context Cache): %v", err)
	}
}

// GetContextCacheClient returns the conversation-context Redis client.
func GetContextCacheClient() *redis.Client {
	if ContextCacheClient == nil {
		InitContextCache()
	}
	return ContextCacheClient
}

// ReminderQueueRedisOpt returns the asynq Redis connection options for the
// reminder queue.
func ReminderQueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}
