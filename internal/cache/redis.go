// Package cache wraps the Redis client used for read-model caching and
// refresh-token storage.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the process-wide Redis client. It is nil when Redis is
// unreachable; callers treat that as "no cache".
var Client *redis.Client

// InitRedis connects the package-level client. On failure the application
// continues without caching.
func InitRedis(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		Client = nil
	} else {
		log.Println("Redis connected successfully")
	}
}

// GetClient returns the package-level client, which may be nil.
func GetClient() *redis.Client {
	return Client
}

// SetClient overrides the package-level client. Tests use this with miniredis.
func SetClient(c *redis.Client) {
	Client = c
}
