package account

// Package account contains simple hand-written test doubles for the customer
// identity ports. These are lightweight and suitable for unit tests without
// codegen.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hallyustars/storefront-go/internal/domain/customer"
	domainsession "github.com/hallyustars/storefront-go/internal/domain/session"
	"github.com/hallyustars/storefront-go/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CustomerAPI  = (*FakeCustomerAPI)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.Cart         = (*FakeCart)(nil)
)

// FakeCustomerAPI simulates the remote commerce API. Each method delegates to
// its Func field when set and otherwise returns a benign default. Call
// counters let tests assert that local validation short-circuited before any
// remote round trip.
type FakeCustomerAPI struct {
	CreateAccessTokenFunc func(ctx context.Context, email, password string) (*customer.AccessToken, []customer.UserError, error)
	ActivateFunc          func(ctx context.Context, in ports.ActivateInput) (*customer.AccessToken, []customer.UserError, error)
	RecoverFunc           func(ctx context.Context, email string) ([]customer.UserError, error)
	UpdateFunc            func(ctx context.Context, accessToken string, fields ports.ProfileUpdate) ([]customer.UserError, error)
	GetCustomerFunc       func(ctx context.Context, accessToken string) (*customer.Customer, error)
	CreateAddressFunc     func(ctx context.Context, accessToken string, fields customer.AddressInput) (string, []customer.UserError, error)
	UpdateAddressFunc     func(ctx context.Context, accessToken, id string, fields customer.AddressInput) ([]customer.UserError, error)
	DeleteAddressFunc     func(ctx context.Context, accessToken, id string) ([]customer.UserError, error)
	SetDefaultAddressFunc func(ctx context.Context, accessToken, id string) ([]customer.UserError, error)

	CreateAccessTokenCalls int
	ActivateCalls          int
	RecoverCalls           int
	UpdateCalls            int
	GetCustomerCalls       int
	CreateAddressCalls     int
	UpdateAddressCalls     int
	DeleteAddressCalls     int
	SetDefaultAddressCalls int
}

// DefaultToken returns an access token suitable as a fake login result.
func DefaultToken() *customer.AccessToken {
	return &customer.AccessToken{
		Token:     "fake-access-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// DefaultCustomer returns a customer record with two saved addresses, the
// first being the default, and a one-entry order history.
func DefaultCustomer() *customer.Customer {
	addrs := []customer.Address{
		{
			ID:        "gid://shopify/MailingAddress/1?model_name=CustomerAddress&customer_access_token=abc",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Address1:  "Calle Falsa 123",
			City:      "Springfield",
			Country:   "Mexico",
		},
		{
			ID:       "gid://shopify/MailingAddress/2?model_name=CustomerAddress&customer_access_token=abc",
			Address1: "Av. Siempre Viva 742",
			City:     "Springfield",
			Country:  "Mexico",
		},
	}
	return &customer.Customer{
		ID:             "gid://shopify/Customer/100",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		Addresses:      addrs,
		DefaultAddress: &addrs[0],
		Orders: []customer.Order{
			{
				ID:                "gid://shopify/Order/9001",
				OrderNumber:       1001,
				ProcessedAt:       time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC),
				FinancialStatus:   "PAID",
				FulfillmentStatus: "FULFILLED",
				Total:             customer.Money{Amount: "199.00", CurrencyCode: "MXN"},
			},
		},
	}
}

func (f *FakeCustomerAPI) CreateAccessToken(ctx context.Context, email, password string) (*customer.AccessToken, []customer.UserError, error) {
	f.CreateAccessTokenCalls++
	if f.CreateAccessTokenFunc != nil {
		return f.CreateAccessTokenFunc(ctx, email, password)
	}
	return DefaultToken(), nil, nil
}

func (f *FakeCustomerAPI) Activate(ctx context.Context, in ports.ActivateInput) (*customer.AccessToken, []customer.UserError, error) {
	f.ActivateCalls++
	if f.ActivateFunc != nil {
		return f.ActivateFunc(ctx, in)
	}
	return DefaultToken(), nil, nil
}

func (f *FakeCustomerAPI) Recover(ctx context.Context, email string) ([]customer.UserError, error) {
	f.RecoverCalls++
	if f.RecoverFunc != nil {
		return f.RecoverFunc(ctx, email)
	}
	return nil, nil
}

func (f *FakeCustomerAPI) Update(ctx context.Context, accessToken string, fields ports.ProfileUpdate) ([]customer.UserError, error) {
	f.UpdateCalls++
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, accessToken, fields)
	}
	return nil, nil
}

func (f *FakeCustomerAPI) GetCustomer(ctx context.Context, accessToken string) (*customer.Customer, error) {
	f.GetCustomerCalls++
	if f.GetCustomerFunc != nil {
		return f.GetCustomerFunc(ctx, accessToken)
	}
	return DefaultCustomer(), nil
}

func (f *FakeCustomerAPI) CreateAddress(ctx context.Context, accessToken string, fields customer.AddressInput) (string, []customer.UserError, error) {
	f.CreateAddressCalls++
	if f.CreateAddressFunc != nil {
		return f.CreateAddressFunc(ctx, accessToken, fields)
	}
	return fmt.Sprintf("gid://shopify/MailingAddress/%d?model_name=CustomerAddress", f.CreateAddressCalls+100), nil, nil
}

func (f *FakeCustomerAPI) UpdateAddress(ctx context.Context, accessToken, id string, fields customer.AddressInput) ([]customer.UserError, error) {
	f.UpdateAddressCalls++
	if f.UpdateAddressFunc != nil {
		return f.UpdateAddressFunc(ctx, accessToken, id, fields)
	}
	return nil, nil
}

func (f *FakeCustomerAPI) DeleteAddress(ctx context.Context, accessToken, id string) ([]customer.UserError, error) {
	f.DeleteAddressCalls++
	if f.DeleteAddressFunc != nil {
		return f.DeleteAddressFunc(ctx, accessToken, id)
	}
	return nil, nil
}

func (f *FakeCustomerAPI) SetDefaultAddress(ctx context.Context, accessToken, id string) ([]customer.UserError, error) {
	f.SetDefaultAddressCalls++
	if f.SetDefaultAddressFunc != nil {
		return f.SetDefaultAddressFunc(ctx, accessToken, id)
	}
	return nil, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainsession.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainsession.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainsession.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainsession.Session, error) {
	sess, ok := m.sessions[id]
	if !ok {
		return domainsession.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int { return len(m.sessions) }

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// FakeCart records buyer-identity updates. When Err is set every call fails
// with it; when NewID is set the update answers with it instead of echoing
// the caller's cart id.
type FakeCart struct {
	Err   error
	NewID string
	Calls int

	// LastCartID and LastToken capture the most recent call's arguments.
	LastCartID string
	LastToken  string
}

func (f *FakeCart) UpdateBuyerIdentity(_ context.Context, cartID, accessToken string) (ports.CartSnapshot, error) {
	f.Calls++
	f.LastCartID = cartID
	f.LastToken = accessToken
	if f.Err != nil {
		return ports.CartSnapshot{}, f.Err
	}
	if f.NewID != "" {
		return ports.CartSnapshot{ID: f.NewID}, nil
	}
	return ports.CartSnapshot{ID: cartID}, nil
}
