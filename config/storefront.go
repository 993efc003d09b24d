package config

import (
	"fmt"
	"time"
)

// StorefrontConfig contains the connection settings for the remote commerce
// GraphQL API.
type StorefrontConfig struct {
	// ShopDomain is the shop's myshopify domain, e.g. "hallyustars.myshopify.com".
	ShopDomain string `env:"SHOP_DOMAIN,required"`

	// AccessToken is the public storefront API token sent with every request.
	AccessToken string `env:"ACCESS_TOKEN,required"`

	// APIVersion selects the GraphQL API version segment of the endpoint URL.
	APIVersion string `env:"API_VERSION" envDefault:"2023-01"`

	// Timeout bounds each round trip to the API.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Endpoint returns the GraphQL endpoint URL for the configured shop and
// API version.
func (s StorefrontConfig) Endpoint() string {
	return fmt.Sprintf("https://%s/api/%s/graphql.json", s.ShopDomain, s.APIVersion)
}

// Sanitize applies guardrails to storefront configuration values.
func (s *StorefrontConfig) Sanitize() {
	if s.Timeout <= 0 {
		s.Timeout = 10 * time.Second
	}
}
