package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis initializes the Redis client used by the rate limiter. Redis
// is optional; returns nil when REDIS_ADDRESS is unset or unreachable.
func ConnectRedis() *redis.Client {
	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0, // default DB
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Println("Failed to connect to Redis, rate limiting disabled:", err)
		return nil
	}

	log.Println("Connected to Redis")
	return client
}
