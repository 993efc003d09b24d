package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hallyustars/storefront-go/config"
	redisadapter "github.com/hallyustars/storefront-go/internal/adapters/redis"
	"github.com/hallyustars/storefront-go/internal/adapters/storefront"
)

// ConnectRedis opens and verifies the Redis connection backing the session
// store.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func ConnectRedis(cfg config.RedisConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.URI,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			logger.Error("close redis client after ping failure", "error", closeErr)
		}
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("redis connected", "addr", cfg.URI)
	return client, nil
}

// NewSessionStore builds the Redis-backed session store.
func NewSessionStore(client redis.UniversalClient, cfg config.SessionConfig) *redisadapter.SessionStore {
	if cfg.KeyPrefix != "" {
		return redisadapter.NewSessionStoreWithPrefix(client, cfg.KeyPrefix)
	}
	return redisadapter.NewSessionStore(client)
}

// NewStorefrontClient builds the GraphQL client for the commerce API.
func NewStorefrontClient(cfg config.StorefrontConfig) (*storefront.Client, error) {
	return storefront.NewClient(storefront.Config{
		Endpoint:    cfg.Endpoint(),
		AccessToken: cfg.AccessToken,
		HTTPClient:  &http.Client{Timeout: cfg.Timeout},
	})
}
