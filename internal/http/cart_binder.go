package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hallyustars/storefront-go/internal/ports"
)

// CartBinderOptions groups dependencies for CartBinder.
type CartBinderOptions struct {
	Cart           ports.Cart
	CartCookieName string
	// Secure marks the cart cookie Secure even when the request itself
	// looks like plain HTTP, for deployments that terminate TLS upstream.
	Secure bool
	Logger *slog.Logger
}

// CartBinder re-binds the browser's active cart to a customer after login or
// activation. The cart id travels in its own cookie, owned by the storefront
// frontend; binding failures never fail the login that triggered them.
type CartBinder struct {
	cart       ports.Cart
	cookieName string
	secure     bool
	logger     *slog.Logger
}

// NewCartBinder constructs a new CartBinder.
func NewCartBinder(opts CartBinderOptions) *CartBinder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CartBinder{
		cart:       opts.Cart,
		cookieName: opts.CartCookieName,
		secure:     opts.Secure,
		logger:     logger,
	}
}

// BindAfterLogin attaches the customer access token to the cart named by the
// request's cart cookie and writes the cart id the remote side answered
// with back into the cookie, so the login response carries the session and
// cart cookies together. A missing cookie means there is no cart to bind
// and is not an error. A remote failure is logged and swallowed, leaving
// the cart cookie untouched: the session is already committed and the cart
// will pick up the identity at checkout.
func (b *CartBinder) BindAfterLogin(ctx context.Context, w http.ResponseWriter, r *http.Request, accessToken string) {
	if b == nil || b.cart == nil {
		return
	}

	cookie, err := r.Cookie(b.cookieName)
	if err != nil || cookie.Value == "" {
		return
	}

	snapshot, err := b.cart.UpdateBuyerIdentity(ctx, cookie.Value, accessToken)
	if err != nil {
		b.logger.WarnContext(ctx, "bind cart buyer identity",
			slog.String("cart_id", cookie.Value),
			slog.Any("error", err))
		return
	}

	id := snapshot.ID
	if id == "" {
		id = cookie.Value
	}
	// Not HttpOnly: the storefront frontend reads the cart id.
	http.SetCookie(w, &http.Cookie{
		Name:     b.cookieName,
		Value:    id,
		Path:     "/",
		Secure:   b.secure || requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}
