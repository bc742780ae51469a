package rdx

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects to Redis. The cache is optional; if REDIS_URL is unset the
// helpers below behave as misses.
func Init() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL is not set, running without cache")
		return
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: os.Getenv("REDIS_PASSWORD"), // Empty if no password
		DB:       0,                           // Default DB
	})
}

func RdxGet(key string) (string, error) {
	if Conn == nil {
		return "", redis.Nil
	}
	return Conn.Get(context.Background(), key).Result()
}

func RdxSetWithTTL(key, value string, ttl time.Duration) error {
	if Conn == nil {
		return nil
	}
	return Conn.Set(context.Background(), key, value, ttl).Err()
}

func RdxDel(key string) (int64, error) {
	if Conn == nil {
		return 0, nil
	}
	return Conn.Del(context.Background(), key).Result()
}
