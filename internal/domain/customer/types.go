package customer

// Package customer contains domain-level types for the storefront's customer
// identity: access tokens, profiles, and the saved address book. It is pure
// and free of transport/adapter concerns.

import (
	"net/url"
	"strings"
	"time"
)

// NewAddressID is the sentinel address id the address form posts for the
// create flow. It is never a stored id.
const NewAddressID = "add"

// AccessToken is the opaque credential issued by the commerce API for an
// authenticated customer. The token is never inspected, only carried.
type AccessToken struct {
	Token     string    `json:"accessToken"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the token's expiry instant has passed.
// A zero expiry is treated as non-expiring.
func (t AccessToken) Expired() bool {
	return !t.ExpiresAt.IsZero() && time.Now().After(t.ExpiresAt)
}

// UserError is a business-rule rejection returned successfully by the
// commerce API (as opposed to a transport failure). Field, when present,
// is the input path of the offending field.
type UserError struct {
	Code    string
	Field   []string
	Message string
}

// Customer is the remote customer record. It is re-fetched per request with
// the current access token and never cached server-side.
type Customer struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Addresses      []Address `json:"addresses"`
	DefaultAddress *Address  `json:"defaultAddress,omitempty"`
	Orders         []Order   `json:"orders"`
}

// Money is an amount in a currency, carried as the remote API returns it.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Order is one entry of the order history head shown with the account view.
// The full order (line items, shipping, discounts) stays remote.
type Order struct {
	ID                string    `json:"id"`
	OrderNumber       int       `json:"orderNumber"`
	ProcessedAt       time.Time `json:"processedAt"`
	FinancialStatus   string    `json:"financialStatus"`
	FulfillmentStatus string    `json:"fulfillmentStatus"`
	Total             Money     `json:"total"`
}

// Address is a saved mailing address, identified by an opaque id scoped to
// its customer.
type Address struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// AddressInput carries the writable fields of an address for create/update
// mutations.
type AddressInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// NormalizeAddressID URL-decodes an address id received from the browser and
// strips its trailing "?..." fragment. Stored ids embed a token after "?"
// that rotates on every customer fetch, so a permalinked id only matches a
// freshly fetched one on the part before the "?".
func NormalizeAddressID(raw string) string {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}
	stable, _, _ := strings.Cut(decoded, "?")
	return stable
}

// FindAddress resolves a possibly stale address id against a freshly fetched
// address list by matching on the stable id prefix. Returns nil when nothing
// matches; edit flows then treat the request as a blank address.
func FindAddress(addrs []Address, id string) *Address {
	stable := NormalizeAddressID(id)
	if stable == "" {
		return nil
	}
	for i := range addrs {
		if strings.HasPrefix(addrs[i].ID, stable) {
			return &addrs[i]
		}
	}
	return nil
}
