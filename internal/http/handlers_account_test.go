package httpx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hallyustars/storefront-go/internal/domain/customer"
	mocksaccount "github.com/hallyustars/storefront-go/internal/mocks/account"
	"github.com/hallyustars/storefront-go/internal/ports"
	"github.com/hallyustars/storefront-go/internal/service"
)

type harness struct {
	api     *mocksaccount.FakeCustomerAPI
	store   *mocksaccount.MemorySessionStore
	cart    *mocksaccount.FakeCart
	handler http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	api := &mocksaccount.FakeCustomerAPI{}
	store := mocksaccount.NewMemorySessionStore()
	cart := &mocksaccount.FakeCart{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sessions := NewSessionManager(SessionManagerOptions{
		Store:      store,
		Secret:     []byte("test-secret"),
		CookieName: "session",
		TTL:        time.Hour,
		Logger:     logger,
	})

	handler := NewRouter(RouterServices{
		Account:  service.NewAccountService(service.AccountServiceOptions{API: api}),
		Sessions: sessions,
		Carts: NewCartBinder(CartBinderOptions{
			Cart:           cart,
			CartCookieName: "cart",
			Logger:         logger,
		}),
		DefaultLocale: "es",
		Logger:        logger,
	})

	return &harness{api: api, store: store, cart: cart, handler: handler}
}

func (h *harness) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *harness) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *harness) login(t *testing.T) *http.Cookie {
	t.Helper()

	rec := h.postForm("/account/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"secret"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	return sessionCookie(t, rec)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func cartCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "cart" {
			return c
		}
	}
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := h.postForm("/account/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"secret"},
	})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account", rec.Header().Get("Location"))

	cookie := sessionCookie(t, rec)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 1, h.store.Len())
}

func TestLogin_LocaleRedirect(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := h.postForm("/es/account/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"secret"},
	})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/es/account", rec.Header().Get("Location"))
}

func TestLogin_BindsCart(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := h.postForm("/account/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"secret"},
	}, &http.Cookie{Name: "cart", Value: "cart-42"})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, 1, h.cart.Calls)
	assert.Equal(t, "cart-42", h.cart.LastCartID)
	assert.Equal(t, "fake-access-token", h.cart.LastToken)

	assert.NotEmpty(t, sessionCookie(t, rec).Value)
	cc := cartCookie(rec)
	require.NotNil(t, cc, "a bound cart must come back as a cart cookie next to the session cookie")
	assert.Equal(t, "cart-42", cc.Value)
}

func TestLogin_CartCookieCarriesNewCartID(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.cart.NewID = "cart-77"

	rec := h.postForm("/account/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"secret"},
	}, &http.Cookie{Name: "cart", Value: "cart-42"})

	require.Equal(t, http.StatusFound, rec.Code)
	cc := cartCookie(rec)
	require.NotNil(t, cc)
	assert.Equal(t, "cart-77", cc.Value, "the cookie must carry the cart id the update answered with")
}

func TestLogin_NoCartCookieSkipsBind(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.login(t)
	assert.Zero(t, h.cart.Calls)
}

func TestLogin_CartFailureStillLogsIn(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.cart.Err = &ports.APIError{Status: 500}

	rec := h.postForm("/account/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"secret"},
	}, &http.Cookie{Name: "cart", Value: "cart-42"})

	require.Equal(t, http.StatusFound, rec.Code, "cart binding is best-effort")
	assert.NotEmpty(t, sessionCookie(t, rec).Value)
	assert.Nil(t, cartCookie(rec), "a failed bind must not rewrite the cart cookie")
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.api.CreateAccessTokenFunc = func(_ context.Context, _, _ string) (*customer.AccessToken, []customer.UserError, error) {
		return nil, []customer.UserError{{Code: "UNIDENTIFIED_CUSTOMER"}}, nil
	}

	rec := h.postForm("/account/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"wrong"},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["formError"], "No reconocimos tu correo")
	assert.Zero(t, h.store.Len(), "failed logins must not mint sessions")
}

func TestLogin_MissingFields(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := h.postForm("/account/login", url.Values{"email": {"ada@example.com"}})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Please provide both an email and a password.", body["formError"])
	assert.Zero(t, h.api.CreateAccessTokenCalls)
}

func TestLoginForm_RedirectsWhenAuthenticated(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	cookie := h.login(t)

	rec := h.get("/account/login", cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account", rec.Header().Get("Location"))
}

func TestAccount_RequiresLogin(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := h.get("/account")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account/login", rec.Header().Get("Location"))

	rec = h.get("/es/account")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/es/account/login", rec.Header().Get("Location"))
}

func TestAccount_ReturnsCustomer(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	cookie := h.login(t)

	rec := h.get("/account", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	cust, ok := body["customer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", cust["email"])

	orders, ok := cust["orders"].([]any)
	require.True(t, ok, "the account view includes the order history head")
	require.Len(t, orders, 1)
	order, ok := orders[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1001), order["orderNumber"])
}

func TestRoot_RedirectsToDefaultLocale(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := h.get("/")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/es/account", rec.Header().Get("Location"))
}

func TestAccount_DeadTokenLogsOut(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	cookie := h.login(t)

	h.api.GetCustomerFunc = func(_ context.Context, _ string) (*customer.Customer, error) {
		return nil, ports.ErrCustomerNotFound
	}

	rec := h.get("/account", cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account/login", rec.Header().Get("Location"))
	assert.Zero(t, h.store.Len(), "the dead session must be deleted")

	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestLogout(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	cookie := h.login(t)
	require.Equal(t, 1, h.store.Len())

	rec := h.postForm("/account/logout", url.Values{}, cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Zero(t, h.store.Len())
	assert.Negative(t, sessionCookie(t, rec).MaxAge)
}

func TestRecover(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := h.postForm("/account/recover", url.Values{"email": {"ada@example.com"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["resetRequested"])
}

func TestRecover_MissingEmail(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := h.postForm("/account/recover", url.Values{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	fields, ok := body["fieldErrors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Por favor, proporciona un correo electrónico.", fields["email"])
}

func TestActivate_SignsIn(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := h.postForm("/account/activate/100/activation-tok", url.Values{
		"password":        {"secret"},
		"passwordConfirm": {"secret"},
	})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account", rec.Header().Get("Location"))
	assert.NotEmpty(t, sessionCookie(t, rec).Value)
	assert.Zero(t, h.cart.Calls, "activation does not touch the cart")
}

func TestActivate_PasswordMismatch(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := h.postForm("/account/activate/100/activation-tok", url.Values{
		"password":        {"secret"},
		"passwordConfirm": {"other"},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields, ok := decodeBody(t, rec)["fieldErrors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Please provide matching passwords", fields["passwordConfirm"])
}

func TestEditProfile(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	cookie := h.login(t)

	rec := h.postForm("/account/edit", url.Values{
		"firstName": {"Grace"},
		"lastName":  {"Hopper"},
	}, cookie)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account", rec.Header().Get("Location"))
	assert.Equal(t, 1, h.api.UpdateCalls)
}

func TestAddress_CreateWithDefaultFailureStillRedirects(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	cookie := h.login(t)

	h.api.SetDefaultAddressFunc = func(_ context.Context, _, _ string) ([]customer.UserError, error) {
		return nil, &ports.APIError{Status: 500}
	}

	rec := h.postForm("/account/address/add", url.Values{
		"address1":       {"Calle Falsa 123"},
		"defaultAddress": {"on"},
	}, cookie)

	require.Equal(t, http.StatusFound, rec.Code, "a failed default toggle must not surface as a failed save")
	assert.Equal(t, 1, h.api.CreateAddressCalls)
}

func TestDeleteAddress_Redirects(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	cookie := h.login(t)

	req := httptest.NewRequest(http.MethodDelete,
		"/account/address/gid:%2F%2Fshopify%2FMailingAddress%2F1", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account", rec.Header().Get("Location"))
	assert.Equal(t, 1, h.api.DeleteAddressCalls)
}

func TestDeleteAddress_RequiresLoginJSON(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodDelete, "/account/address/gid:%2F%2Fshopify%2FMailingAddress%2F1", nil)
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code, "fetch callers get a status, not a login redirect")
	assert.Zero(t, h.api.DeleteAddressCalls)
}

func TestDeleteAddress_DefaultAddressMessage(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	cookie := h.login(t)

	h.api.DeleteAddressFunc = func(_ context.Context, _, _ string) ([]customer.UserError, error) {
		return []customer.UserError{{Message: "Cannot delete the customer's default address"}}, nil
	}

	req := httptest.NewRequest(http.MethodDelete, "/account/address/gid:%2F%2Fshopify%2FMailingAddress%2F1", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot delete the customer's default address", decodeBody(t, rec)["formError"])
}
