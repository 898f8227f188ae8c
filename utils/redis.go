package utils

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedis connects the standings cache. Redis is optional: with REDIS_URL
// unset the service computes standings from Postgres on every read.
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set — standings cache disabled")
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return err
	}
	redisClient = redis.NewClient(opt)
	log.Println("✅ Redis standings cache connected")
	return nil
}

// Redis returns the shared client, or nil when the cache is disabled.
func Redis() *redis.Client {
	return redisClient
}
