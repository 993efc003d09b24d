package session

// Package session contains the domain type for a browser session: an opaque
// string bag addressed by a signed cookie. It is pure and free of
// framework/adapter concerns; persistence lives behind ports.SessionStore.

import "time"

// KeyCustomerAccessToken is the only key the identity flows store in the
// session. Absence means the session is anonymous.
const KeyCustomerAccessToken = "customerAccessToken"

// Session is the server-side record addressed by the browser's session
// cookie. ID is an opaque identifier (random URL-safe string); the cookie
// carries a signed wrapper around it, never the values themselves.
type Session struct {
	ID        string            `json:"id"`
	Values    map[string]string `json:"values"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// New creates an empty session with the given id and lifetime.
func New(id string, ttl time.Duration) Session {
	return Session{
		ID:        id,
		Values:    make(map[string]string),
		ExpiresAt: time.Now().Add(ttl),
	}
}

// Get returns the value for key, or "" when absent.
func (s Session) Get(key string) string {
	return s.Values[key]
}

// Set stores a value in the session bag.
func (s *Session) Set(key, value string) {
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	s.Values[key] = value
}

// Unset removes a key from the session bag.
func (s *Session) Unset(key string) {
	delete(s.Values, key)
}

// AccessToken returns the customer access token held by the session, or ""
// for anonymous sessions.
func (s Session) AccessToken() string {
	return s.Get(KeyCustomerAccessToken)
}

// Authenticated reports whether the session holds a customer access token
// and has not expired. The session's expiry is clamped to the token's expiry
// when the token is stored, so a live session implies a live token.
func (s Session) Authenticated() bool {
	if s.AccessToken() == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || time.Now().Before(s.ExpiresAt)
}
