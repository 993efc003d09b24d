package httpx

import (
	"log/slog"
	"net/http"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Account  AccountServiceInterface
	Sessions *SessionManager
	Carts    *CartBinder
	// DefaultLocale, when set, makes the bare root path redirect to the
	// account page under that locale.
	DefaultLocale string
	Logger        *slog.Logger
}

// NewRouter creates and configures a new HTTP router with the account
// surface and base middleware.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	accountHandlers := &AccountHandlers{
		Svc:      services.Account,
		Sessions: services.Sessions,
		Carts:    services.Carts,
		Logger:   services.Logger,
	}
	registerAccountRoutes(mux, accountHandlers)

	if services.DefaultLocale != "" {
		mux.Handle("GET /{$}",
			http.RedirectHandler("/"+services.DefaultLocale+"/account", http.StatusFound))
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var handler http.Handler = mux
	handler = WithSession(services.Sessions)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

// registerAccountRoutes mounts the account surface twice: at the root and
// under an optional locale path segment ("/es/account/..."). Literal
// patterns take precedence over the {locale} wildcard, so "/account" is
// never captured as a locale.
func registerAccountRoutes(mux *http.ServeMux, h *AccountHandlers) {
	authed := RequireCustomer()
	authedJSON := RequireCustomerJSON()

	for _, prefix := range []string{"", "/{locale}"} {
		mux.Handle("GET "+prefix+"/account/login", http.HandlerFunc(h.LoginForm))
		mux.Handle("POST "+prefix+"/account/login", http.HandlerFunc(h.Login))
		mux.Handle("POST "+prefix+"/account/logout", http.HandlerFunc(h.Logout))

		mux.Handle("GET "+prefix+"/account/recover", http.HandlerFunc(h.RecoverForm))
		mux.Handle("POST "+prefix+"/account/recover", http.HandlerFunc(h.Recover))

		mux.Handle("POST "+prefix+"/account/activate/{id}/{activationToken}", http.HandlerFunc(h.Activate))

		mux.Handle("GET "+prefix+"/account", authed(http.HandlerFunc(h.Account)))
		mux.Handle("POST "+prefix+"/account/edit", authed(http.HandlerFunc(h.EditProfile)))
		mux.Handle("POST "+prefix+"/account/address/{id}", authed(http.HandlerFunc(h.Address)))
		// DELETE comes from fetch, not a form post; a login redirect
		// would only confuse the caller.
		mux.Handle("DELETE "+prefix+"/account/address/{id}", authedJSON(http.HandlerFunc(h.DeleteAddress)))
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
