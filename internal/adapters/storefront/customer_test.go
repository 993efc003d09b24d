package storefront

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hallyustars/storefront-go/internal/domain/customer"
	"github.com/hallyustars/storefront-go/internal/ports"
)

func TestCustomerAPI_CreateAccessToken(t *testing.T) {
	t.Parallel()
	srv := newStubServer(t, `{"data":{"customerAccessTokenCreate":{
		"customerUserErrors":[],
		"customerAccessToken":{"accessToken":"tok-1","expiresAt":"2026-09-01T00:00:00Z"}
	}}}`)
	api := NewCustomerAPI(newTestClient(t, srv))

	token, userErrs, err := api.CreateAccessToken(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Empty(t, userErrs)
	require.NotNil(t, token)
	assert.Equal(t, "tok-1", token.Token)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), token.ExpiresAt)

	input, ok := srv.last.Variables["input"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", input["email"])
	assert.Equal(t, "secret", input["password"])
}

func TestCustomerAPI_CreateAccessToken_UserErrors(t *testing.T) {
	t.Parallel()
	srv := newStubServer(t, `{"data":{"customerAccessTokenCreate":{
		"customerUserErrors":[{"code":"UNIDENTIFIED_CUSTOMER","field":["input","password"],"message":"Unidentified customer"}],
		"customerAccessToken":null
	}}}`)
	api := NewCustomerAPI(newTestClient(t, srv))

	token, userErrs, err := api.CreateAccessToken(context.Background(), "ada@example.com", "wrong")
	require.NoError(t, err)
	assert.Nil(t, token)
	require.Len(t, userErrs, 1)
	assert.Equal(t, "UNIDENTIFIED_CUSTOMER", userErrs[0].Code)
	assert.Equal(t, []string{"input", "password"}, userErrs[0].Field)
}

func TestCustomerAPI_Activate_ComposesGlobalID(t *testing.T) {
	t.Parallel()
	srv := newStubServer(t, `{"data":{"customerActivate":{
		"customerUserErrors":[],
		"customerAccessToken":{"accessToken":"tok-1","expiresAt":"2026-09-01T00:00:00Z"}
	}}}`)
	api := NewCustomerAPI(newTestClient(t, srv))

	_, _, err := api.Activate(context.Background(), ports.ActivateInput{
		CustomerID:      "100",
		ActivationToken: "act-tok",
		Password:        "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Customer/100", srv.last.Variables["id"])

	input, ok := srv.last.Variables["input"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "act-tok", input["activationToken"])
}

func TestCustomerAPI_Update_OmitsUnsetFields(t *testing.T) {
	t.Parallel()
	srv := newStubServer(t, `{"data":{"customerUpdate":{"customerUserErrors":[]}}}`)
	api := NewCustomerAPI(newTestClient(t, srv))

	first := "Ada"
	_, err := api.Update(context.Background(), "tok-1", ports.ProfileUpdate{FirstName: &first})
	require.NoError(t, err)

	fields, ok := srv.last.Variables["customer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada", fields["firstName"])
	assert.NotContains(t, fields, "lastName")
	assert.NotContains(t, fields, "password")
}

func TestCustomerAPI_GetCustomer(t *testing.T) {
	t.Parallel()
	srv := newStubServer(t, `{"data":{"customer":{
		"id":"gid://shopify/Customer/100",
		"firstName":"Ada",
		"lastName":"Lovelace",
		"email":"ada@example.com",
		"phone":null,
		"defaultAddress":{"id":"gid://shopify/MailingAddress/1"},
		"addresses":{"edges":[
			{"node":{"id":"gid://shopify/MailingAddress/1","address1":"Calle Falsa 123"}},
			{"node":{"id":"gid://shopify/MailingAddress/2","address1":"Av. Siempre Viva 742"}}
		]},
		"orders":{"edges":[
			{"node":{
				"id":"gid://shopify/Order/9001",
				"orderNumber":1001,
				"processedAt":"2023-04-01T12:00:00Z",
				"financialStatus":"PAID",
				"fulfillmentStatus":"FULFILLED",
				"currentTotalPrice":{"amount":"199.0","currencyCode":"MXN"}
			}}
		]}
	}}}`)
	api := NewCustomerAPI(newTestClient(t, srv))

	cust, err := api.GetCustomer(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", cust.Email)
	require.Len(t, cust.Addresses, 2)
	assert.Equal(t, "Calle Falsa 123", cust.Addresses[0].Address1)
	require.NotNil(t, cust.DefaultAddress)
	assert.Equal(t, "gid://shopify/MailingAddress/1", cust.DefaultAddress.ID)

	require.Len(t, cust.Orders, 1)
	assert.Equal(t, 1001, cust.Orders[0].OrderNumber)
	assert.Equal(t, time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC), cust.Orders[0].ProcessedAt)
	assert.Equal(t, customer.Money{Amount: "199.0", CurrencyCode: "MXN"}, cust.Orders[0].Total)
}

func TestCustomerAPI_GetCustomer_DeadToken(t *testing.T) {
	t.Parallel()
	srv := newStubServer(t, `{"data":{"customer":null}}`)
	api := NewCustomerAPI(newTestClient(t, srv))

	_, err := api.GetCustomer(context.Background(), "dead-token")
	assert.ErrorIs(t, err, ports.ErrCustomerNotFound)
}

func TestCustomerAPI_CreateAddress(t *testing.T) {
	t.Parallel()
	srv := newStubServer(t, `{"data":{"customerAddressCreate":{
		"customerUserErrors":[],
		"customerAddress":{"id":"gid://shopify/MailingAddress/7"}
	}}}`)
	api := NewCustomerAPI(newTestClient(t, srv))

	id, userErrs, err := api.CreateAddress(context.Background(), "tok-1", customer.AddressInput{Address1: "Calle Falsa 123"})
	require.NoError(t, err)
	assert.Empty(t, userErrs)
	assert.Equal(t, "gid://shopify/MailingAddress/7", id)

	address, ok := srv.last.Variables["address"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Calle Falsa 123", address["address1"])
}

func TestCartAPI_UpdateBuyerIdentity(t *testing.T) {
	t.Parallel()
	srv := newStubServer(t, `{"data":{"cartBuyerIdentityUpdate":{
		"cart":{"id":"gid://shopify/Cart/new-99"},
		"userErrors":[]
	}}}`)
	api := NewCartAPI(newTestClient(t, srv))

	snapshot, err := api.UpdateBuyerIdentity(context.Background(), "gid://shopify/Cart/42", "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Cart/new-99", snapshot.ID, "the remote side may mint a new cart id")

	identity, ok := srv.last.Variables["buyerIdentity"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tok-1", identity["customerAccessToken"])
}

func TestCartAPI_UpdateBuyerIdentity_UserErrors(t *testing.T) {
	t.Parallel()
	srv := newStubServer(t, `{"data":{"cartBuyerIdentityUpdate":{
		"cart":null,
		"userErrors":[{"message":"cart does not exist"}]
	}}}`)
	api := NewCartAPI(newTestClient(t, srv))

	_, err := api.UpdateBuyerIdentity(context.Background(), "gid://shopify/Cart/42", "tok-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart does not exist")
}

func TestCartAPI_UpdateBuyerIdentity_EmptyCartID(t *testing.T) {
	t.Parallel()
	srv := newStubServer(t, `{"data":{}}`)
	api := NewCartAPI(newTestClient(t, srv))

	_, err := api.UpdateBuyerIdentity(context.Background(), "", "tok-1")
	require.Error(t, err)
	assert.Nil(t, srv.last, "no request must be sent without a cart id")
}
