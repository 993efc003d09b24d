package testutil

// Package testutil holds helpers shared by integration-flavored tests.

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetTestRedisAddr returns the Redis address to test against. It prefers the
// REDIS_ADDR environment variable (set in CI), then common local addresses.
// The boolean reports whether Redis answered at that address.
func GetTestRedisAddr(t *testing.T) (string, bool) {
	t.Helper()

	if ciAddr := os.Getenv("REDIS_ADDR"); ciAddr != "" {
		return testRedisConnection(ciAddr)
	}

	for _, candidate := range []string{"redis:6379", "localhost:6379"} {
		if addr, ok := testRedisConnection(candidate); ok {
			return addr, true
		}
	}
	return "", false
}

func testRedisConnection(addr string) (string, bool) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return addr, false
	}
	return addr, true
}

// SetupTestRedis creates a Redis client for testing. Tests are skipped when
// Redis is not available.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr, ok := GetTestRedisAddr(t)
	if !ok {
		t.Skip("Redis not available for testing")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		client.FlushDB(ctx)
		_ = client.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client.FlushDB(ctx)

	return client
}
