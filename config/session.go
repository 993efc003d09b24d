package config

import "time"

// SessionConfig contains browser session settings.
type SessionConfig struct {
	// CookieName is the name of the signed session cookie.
	CookieName string `env:"COOKIE_NAME" envDefault:"session"`

	// CartCookieName is the name of the cookie holding the active cart id.
	// The cart cookie is written by the storefront frontend; this service
	// only reads it when re-binding buyer identity after login.
	CartCookieName string `env:"CART_COOKIE_NAME" envDefault:"cart"`

	// TTL is the session lifetime. A stored customer access token with a
	// shorter expiry clamps the effective lifetime down.
	TTL time.Duration `env:"TTL" envDefault:"24h"`

	// Secret signs the session cookie. Required; there is no safe default.
	Secret string `env:"SECRET,required"`

	// KeyPrefix namespaces session keys in Redis.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"session:"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = 24 * time.Hour
	}
	if s.CookieName == "" {
		s.CookieName = "session"
	}
}
