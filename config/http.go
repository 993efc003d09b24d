package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the storefront (e.g. "https://shop.example.com").
	// Used when generating absolute redirect URLs.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// DefaultLocale is the locale segment assumed when a request path does
	// not carry one.
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"es"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Addr == "" {
		h.Addr = ":8080"
	}
	if h.DefaultLocale == "" {
		h.DefaultLocale = "es"
	}
}
