package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hallyustars/storefront-go/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting storefront identity service",
		"addr", cfg.HTTP.Addr,
		"shop_domain", cfg.Storefront.ShopDomain,
		"api_version", cfg.Storefront.APIVersion,
		"dev", cfg.IsDev)

	redisClient, err := bootstrap.ConnectRedis(cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", cerr)
		}
	}()

	storefrontClient, err := bootstrap.NewStorefrontClient(cfg.Storefront)
	if err != nil {
		return err
	}

	services := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		RedisClient: redisClient,
		Storefront:  storefrontClient,
		Logger:      logger,
	})

	server := bootstrap.StartHTTPServer(&bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})

	return bootstrap.WaitForShutdown(ctx, server, logger)
}
