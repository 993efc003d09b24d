package ports

// Package ports defines interfaces (hexagonal ports) for the identity flows.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	"github.com/hallyustars/storefront-go/internal/domain/customer"
	domainsession "github.com/hallyustars/storefront-go/internal/domain/session"
)

// ActivateInput groups parameters for the account activation mutation.
type ActivateInput struct {
	// CustomerID is the bare numeric id from the activation link; the
	// adapter composes the global id the API expects.
	CustomerID      string
	ActivationToken string
	Password        string
}

// ProfileUpdate carries the subset of customer fields to send to the update
// mutation. Nil fields are omitted entirely.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Password  *string
}

// CustomerAPI executes one customer-lifecycle operation per call against the
// remote commerce API and normalizes the result. A non-empty user-error list
// means the API accepted the request but rejected the business operation;
// err is reserved for transport and API-level failures (see APIError).
type CustomerAPI interface {
	CreateAccessToken(ctx context.Context, email, password string) (*customer.AccessToken, []customer.UserError, error)
	Activate(ctx context.Context, in ActivateInput) (*customer.AccessToken, []customer.UserError, error)
	Recover(ctx context.Context, email string) ([]customer.UserError, error)
	Update(ctx context.Context, accessToken string, fields ProfileUpdate) ([]customer.UserError, error)
	GetCustomer(ctx context.Context, accessToken string) (*customer.Customer, error)

	// CreateAddress returns the id of the newly created address on success.
	CreateAddress(ctx context.Context, accessToken string, fields customer.AddressInput) (string, []customer.UserError, error)
	UpdateAddress(ctx context.Context, accessToken, id string, fields customer.AddressInput) ([]customer.UserError, error)
	DeleteAddress(ctx context.Context, accessToken, id string) ([]customer.UserError, error)
	SetDefaultAddress(ctx context.Context, accessToken, id string) ([]customer.UserError, error)
}

// SessionStore persists and retrieves browser sessions by opaque id.
type SessionStore interface {
	Save(ctx context.Context, sess domainsession.Session) error
	Get(ctx context.Context, id string) (domainsession.Session, error)
	Delete(ctx context.Context, id string) error
}

// CartSnapshot is the slice of the cart the identity flows care about. The
// id may differ from the one sent: the remote side can mint a new cart when
// re-binding identity.
type CartSnapshot struct {
	ID string
}

// Cart is the cart collaborator: it re-binds the active cart's buyer
// identity to a customer access token.
type Cart interface {
	UpdateBuyerIdentity(ctx context.Context, cartID, customerAccessToken string) (CartSnapshot, error)
}
