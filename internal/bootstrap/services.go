package bootstrap

import (
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/hallyustars/storefront-go/config"
	"github.com/hallyustars/storefront-go/internal/adapters/storefront"
	httpx "github.com/hallyustars/storefront-go/internal/http"
	"github.com/hallyustars/storefront-go/internal/service"
)

// ServiceDeps holds the shared dependencies services are built from.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Storefront  *storefront.Client
	Logger      *slog.Logger
}

// ServiceContainer holds the constructed service layer and its HTTP
// collaborators.
type ServiceContainer struct {
	Account  *service.AccountService
	Sessions *httpx.SessionManager
	Carts    *httpx.CartBinder
}

// NewServices wires adapters into the service layer.
func NewServices(deps *ServiceDeps) ServiceContainer {
	cfg := deps.Config

	customerAPI := storefront.NewCustomerAPI(deps.Storefront)
	cartAPI := storefront.NewCartAPI(deps.Storefront)
	store := NewSessionStore(deps.RedisClient, cfg.Session)

	// The public base URL decides cookie security: an https storefront
	// keeps its cookies Secure even when TLS terminates upstream.
	secureCookies := strings.HasPrefix(cfg.HTTP.BaseURL, "https://")

	return ServiceContainer{
		Account: service.NewAccountService(service.AccountServiceOptions{
			API: customerAPI,
		}),
		Sessions: httpx.NewSessionManager(httpx.SessionManagerOptions{
			Store:        store,
			Secret:       []byte(cfg.Session.Secret),
			CookieName:   cfg.Session.CookieName,
			CookieDomain: cfg.HTTP.CookieDomain,
			Secure:       secureCookies,
			TTL:          cfg.Session.TTL,
			Logger:       deps.Logger,
		}),
		Carts: httpx.NewCartBinder(httpx.CartBinderOptions{
			Cart:           cartAPI,
			CartCookieName: cfg.Session.CartCookieName,
			Secure:         secureCookies,
			Logger:         deps.Logger,
		}),
	}
}
