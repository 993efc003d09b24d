package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hallyustars/storefront-go/internal/domain/customer"
	domainsession "github.com/hallyustars/storefront-go/internal/domain/session"
	"github.com/hallyustars/storefront-go/internal/ports"
	"github.com/hallyustars/storefront-go/internal/service"
)

// AccountServiceInterface defines the account operations the handlers need.
type AccountServiceInterface interface {
	Login(ctx context.Context, email, password string) (customer.AccessToken, error)
	Activate(ctx context.Context, params service.ActivateParams) (customer.AccessToken, error)
	Recover(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, token string, params service.ProfileParams) error
	UpsertAddress(ctx context.Context, token string, params service.AddressParams) (service.UpsertAddressResult, error)
	DeleteAddress(ctx context.Context, token, rawID string) error
	GetCustomer(ctx context.Context, token string) (*customer.Customer, error)
}

// AccountHandlers provides HTTP handlers for the customer account surface.
type AccountHandlers struct {
	Svc      AccountServiceInterface
	Sessions *SessionManager
	Carts    *CartBinder
	Logger   *slog.Logger
}

func (h *AccountHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginForm handles GET /account/login. Authenticated shoppers are sent to
// their account instead of the form.
func (h *AccountHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if sess, ok := SessionFromContext(r.Context()); ok && sess.Authenticated() {
		http.Redirect(w, r, accountPath(r), http.StatusFound)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
}

// Login handles POST /account/login.
func (h *AccountHandlers) Login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	token, err := h.Svc.Login(r.Context(), email, password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if !h.establishSession(w, r, token) {
		return
	}
	h.Carts.BindAfterLogin(r.Context(), w, r, token.Token)

	http.Redirect(w, r, accountPath(r), http.StatusFound)
}

// Logout handles POST /account/logout.
func (h *AccountHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	http.SetCookie(w, h.Sessions.Destroy(r.Context(), sess, r))
	http.Redirect(w, r, localePath(r, "/"), http.StatusFound)
}

// Account handles GET /account. The customer record is re-fetched on every
// request; a token the remote side no longer recognizes logs the session out.
func (h *AccountHandlers) Account(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	cust, err := h.Svc.GetCustomer(r.Context(), sess.AccessToken())
	if err != nil {
		if errors.Is(err, ports.ErrCustomerNotFound) {
			http.SetCookie(w, h.Sessions.Destroy(r.Context(), sess, r))
			http.Redirect(w, r, loginPath(r), http.StatusFound)
			return
		}
		h.writeError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"customer": cust})
}

// RecoverForm handles GET /account/recover. Authenticated shoppers have
// nothing to recover and are sent to their account.
func (h *AccountHandlers) RecoverForm(w http.ResponseWriter, r *http.Request) {
	if sess, ok := SessionFromContext(r.Context()); ok && sess.Authenticated() {
		http.Redirect(w, r, accountPath(r), http.StatusFound)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"resetRequested": false})
}

// Recover handles POST /account/recover. The response is identical whether
// or not the address maps to an account.
func (h *AccountHandlers) Recover(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Recover(r.Context(), r.PostFormValue("email")); err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"resetRequested": true})
}

// Activate handles POST /account/activate/{id}/{activationToken}. A
// successful activation signs the shopper in directly.
func (h *AccountHandlers) Activate(w http.ResponseWriter, r *http.Request) {
	token, err := h.Svc.Activate(r.Context(), service.ActivateParams{
		CustomerID:      r.PathValue("id"),
		ActivationToken: r.PathValue("activationToken"),
		Password:        r.PostFormValue("password"),
		PasswordConfirm: r.PostFormValue("passwordConfirm"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if !h.establishSession(w, r, token) {
		return
	}
	http.Redirect(w, r, accountPath(r), http.StatusFound)
}

// EditProfile handles POST /account/edit.
func (h *AccountHandlers) EditProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	params := service.ProfileParams{
		FirstName:        formField(r, "firstName"),
		LastName:         formField(r, "lastName"),
		Email:            formField(r, "email"),
		Phone:            formField(r, "phone"),
		CurrentPassword:  r.PostFormValue("currentPassword"),
		NewPassword:      r.PostFormValue("newPassword"),
		NewPasswordAgain: r.PostFormValue("newPassword2"),
	}

	if err := h.Svc.UpdateProfile(r.Context(), sess.AccessToken(), params); err != nil {
		if errors.Is(err, ports.ErrCustomerNotFound) {
			http.SetCookie(w, h.Sessions.Destroy(r.Context(), sess, r))
			http.Redirect(w, r, loginPath(r), http.StatusFound)
			return
		}
		h.writeError(w, r, err)
		return
	}

	http.Redirect(w, r, accountPath(r), http.StatusFound)
}

// Address handles POST /account/address/{id}. The path id "add" creates a
// new address; anything else updates the address it names. The form's
// defaultAddress checkbox promotes the written address to the default.
func (h *AccountHandlers) Address(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	params := service.AddressParams{
		AddressID:   r.PathValue("id"),
		MakeDefault: r.PostFormValue("defaultAddress") == "on",
		Fields: customer.AddressInput{
			FirstName: r.PostFormValue("firstName"),
			LastName:  r.PostFormValue("lastName"),
			Company:   r.PostFormValue("company"),
			Address1:  r.PostFormValue("address1"),
			Address2:  r.PostFormValue("address2"),
			City:      r.PostFormValue("city"),
			Province:  r.PostFormValue("province"),
			Zip:       r.PostFormValue("zip"),
			Country:   r.PostFormValue("country"),
			Phone:     r.PostFormValue("phone"),
		},
	}

	result, err := h.Svc.UpsertAddress(r.Context(), sess.AccessToken(), params)
	if err != nil {
		if errors.Is(err, ports.ErrCustomerNotFound) {
			http.SetCookie(w, h.Sessions.Destroy(r.Context(), sess, r))
			http.Redirect(w, r, loginPath(r), http.StatusFound)
			return
		}
		h.writeError(w, r, err)
		return
	}
	if result.DefaultErr != nil {
		// The address itself was written; the shopper can retry the
		// default toggle from the address book.
		h.logger().WarnContext(r.Context(), "set default address",
			slog.String("address_id", result.AddressID),
			slog.Any("error", result.DefaultErr))
	}

	http.Redirect(w, r, accountPath(r), http.StatusFound)
}

// DeleteAddress handles DELETE /account/address/{id}.
func (h *AccountHandlers) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	if err := h.Svc.DeleteAddress(r.Context(), sess.AccessToken(), r.PathValue("id")); err != nil {
		if errors.Is(err, ports.ErrCustomerNotFound) {
			http.SetCookie(w, h.Sessions.Destroy(r.Context(), sess, r))
			http.Redirect(w, r, loginPath(r), http.StatusFound)
			return
		}
		h.writeError(w, r, err)
		return
	}

	http.Redirect(w, r, accountPath(r), http.StatusFound)
}

// establishSession stores the access token in the request's session, clamps
// the session's lifetime to the token's, and commits it. Reports whether the
// response can proceed; on failure an error has already been written.
func (h *AccountHandlers) establishSession(w http.ResponseWriter, r *http.Request, token customer.AccessToken) bool {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		sess = h.Sessions.Load(r)
	}
	sess.Set(domainsession.KeyCustomerAccessToken, token.Token)
	if !token.ExpiresAt.IsZero() && token.ExpiresAt.Before(sess.ExpiresAt) {
		sess.ExpiresAt = token.ExpiresAt
	}

	cookie, err := h.Sessions.Commit(r.Context(), sess, r)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "commit session", slog.Any("error", err))
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "session_unavailable",
			Err:     errors.New("could not establish session"),
		})
		return false
	}
	http.SetCookie(w, cookie)
	return true
}

// formField returns a pointer to the named form value, or nil when the form
// did not post the field at all. Absent fields are left untouched by the
// profile mutation; posted-but-empty fields clear their target.
func formField(r *http.Request, name string) *string {
	if r.PostForm == nil {
		_ = r.ParseForm()
	}
	if !r.PostForm.Has(name) {
		return nil
	}
	v := r.PostForm.Get(name)
	return &v
}

// writeError renders a service failure. ActionErrors become 400 form
// payloads; anything else is treated as unexpected and mapped to the generic
// form message so internals never reach the browser.
func (h *AccountHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if actionErr, ok := service.AsActionError(err); ok {
		WriteActionError(w, actionErr)
		return
	}
	h.logger().ErrorContext(r.Context(), "account action failed", slog.Any("error", err))
	WriteActionError(w, service.MapError("", err))
}
