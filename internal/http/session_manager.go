package httpx

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainsession "github.com/hallyustars/storefront-go/internal/domain/session"
	"github.com/hallyustars/storefront-go/internal/ports"
)

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	Store        ports.SessionStore
	Secret       []byte
	CookieName   string
	CookieDomain string
	// Secure marks the session cookie Secure even when the request itself
	// looks like plain HTTP, for deployments that terminate TLS upstream
	// without forwarding the protocol header.
	Secure bool
	TTL    time.Duration
	Logger *slog.Logger
}

// SessionManager bridges the browser cookie and the server-side session
// store. The cookie carries a signed token wrapping the opaque session id;
// the session's values never leave the server.
type SessionManager struct {
	store        ports.SessionStore
	secret       []byte
	cookieName   string
	cookieDomain string
	secure       bool
	ttl          time.Duration
	logger       *slog.Logger
}

// NewSessionManager constructs a new SessionManager.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		store:        opts.Store,
		secret:       opts.Secret,
		cookieName:   opts.CookieName,
		cookieDomain: opts.CookieDomain,
		secure:       opts.Secure,
		ttl:          opts.TTL,
		logger:       logger,
	}
}

// Load resolves the request's session. A missing cookie, a cookie that fails
// signature verification, or a session absent from the store all yield a
// fresh anonymous session; it is not persisted until Commit.
func (m *SessionManager) Load(r *http.Request) domainsession.Session {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return m.newSession()
	}

	id, err := m.verify(cookie.Value)
	if err != nil {
		m.logger.DebugContext(r.Context(), "session cookie rejected", "error", err)
		return m.newSession()
	}

	sess, err := m.store.Get(r.Context(), id)
	if err != nil {
		return m.newSession()
	}
	return sess
}

// Commit persists the session and returns the signed cookie to set on the
// response.
func (m *SessionManager) Commit(ctx context.Context, sess domainsession.Session, r *http.Request) (*http.Cookie, error) {
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	signed, err := m.sign(sess)
	if err != nil {
		return nil, fmt.Errorf("sign session cookie: %w", err)
	}

	return &http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		Domain:   m.cookieDomain,
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure || requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Destroy deletes the server-side session record and returns an expired
// cookie that clears the browser's copy. Store failures are logged, not
// surfaced; the cookie is cleared regardless.
func (m *SessionManager) Destroy(ctx context.Context, sess domainsession.Session, r *http.Request) *http.Cookie {
	if sess.ID != "" {
		if err := m.store.Delete(ctx, sess.ID); err != nil {
			m.logger.WarnContext(ctx, "delete session", "error", err)
		}
	}
	return m.ClearCookie(r)
}

// ClearCookie returns a cookie that expires the session cookie immediately.
// It mirrors the attributes used when setting cookies to maximize
// compatibility across browsers during deletion.
func (m *SessionManager) ClearCookie(r *http.Request) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Domain:   m.cookieDomain,
		HttpOnly: true,
		Secure:   m.secure || requestIsSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	}
}

// TTL returns the configured session lifetime.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

func (m *SessionManager) newSession() domainsession.Session {
	return domainsession.New(uuid.NewString(), m.ttl)
}

func (m *SessionManager) sign(sess domainsession.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sess.ID,
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *SessionManager) verify(value string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(value, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("session cookie has no subject")
	}
	return claims.Subject, nil
}

// requestIsSecure reports whether the request arrived over TLS, directly or
// behind a terminating proxy.
func requestIsSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
