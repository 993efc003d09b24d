package storefront

import (
	"context"
	"time"

	"github.com/hallyustars/storefront-go/internal/domain/customer"
	"github.com/hallyustars/storefront-go/internal/ports"
)

// Ensure compile-time conformance to the port.
var _ ports.CustomerAPI = (*CustomerAPI)(nil)

// CustomerAPI implements ports.CustomerAPI over the GraphQL client. The
// documents below are part of the wire contract; their field names are fixed.
type CustomerAPI struct {
	client *Client
}

// NewCustomerAPI creates the customer-lifecycle API adapter.
func NewCustomerAPI(client *Client) *CustomerAPI {
	return &CustomerAPI{client: client}
}

// customerGID composes the global id the activation mutation expects from
// the bare numeric id carried by activation links.
func customerGID(id string) string {
	return "gid://shopify/Customer/" + id
}

type userErrorPayload struct {
	Code    string   `json:"code"`
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

func toUserErrors(in []userErrorPayload) []customer.UserError {
	if len(in) == 0 {
		return nil
	}
	out := make([]customer.UserError, 0, len(in))
	for _, e := range in {
		out = append(out, customer.UserError{Code: e.Code, Field: e.Field, Message: e.Message})
	}
	return out
}

type accessTokenPayload struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"`
}

func (p *accessTokenPayload) toDomain() *customer.AccessToken {
	if p == nil || p.AccessToken == "" {
		return nil
	}
	token := &customer.AccessToken{Token: p.AccessToken}
	if t, err := time.Parse(time.RFC3339, p.ExpiresAt); err == nil {
		token.ExpiresAt = t
	}
	return token
}

const customerAccessTokenCreateMutation = `
mutation customerAccessTokenCreate($input: CustomerAccessTokenCreateInput!) {
  customerAccessTokenCreate(input: $input) {
    customerUserErrors {
      code
      field
      message
    }
    customerAccessToken {
      accessToken
      expiresAt
    }
  }
}`

func (a *CustomerAPI) CreateAccessToken(ctx context.Context, email, password string) (*customer.AccessToken, []customer.UserError, error) {
	var data struct {
		CustomerAccessTokenCreate struct {
			CustomerUserErrors  []userErrorPayload  `json:"customerUserErrors"`
			CustomerAccessToken *accessTokenPayload `json:"customerAccessToken"`
		} `json:"customerAccessTokenCreate"`
	}
	err := a.client.do(ctx, customerAccessTokenCreateMutation, map[string]any{
		"input": map[string]any{"email": email, "password": password},
	}, &data)
	if err != nil {
		return nil, nil, err
	}
	payload := data.CustomerAccessTokenCreate
	return payload.CustomerAccessToken.toDomain(), toUserErrors(payload.CustomerUserErrors), nil
}

const customerActivateMutation = `
mutation customerActivate($id: ID!, $input: CustomerActivateInput!) {
  customerActivate(id: $id, input: $input) {
    customerUserErrors {
      code
      field
      message
    }
    customerAccessToken {
      accessToken
      expiresAt
    }
  }
}`

func (a *CustomerAPI) Activate(ctx context.Context, in ports.ActivateInput) (*customer.AccessToken, []customer.UserError, error) {
	var data struct {
		CustomerActivate struct {
			CustomerUserErrors  []userErrorPayload  `json:"customerUserErrors"`
			CustomerAccessToken *accessTokenPayload `json:"customerAccessToken"`
		} `json:"customerActivate"`
	}
	err := a.client.do(ctx, customerActivateMutation, map[string]any{
		"id": customerGID(in.CustomerID),
		"input": map[string]any{
			"password":        in.Password,
			"activationToken": in.ActivationToken,
		},
	}, &data)
	if err != nil {
		return nil, nil, err
	}
	payload := data.CustomerActivate
	return payload.CustomerAccessToken.toDomain(), toUserErrors(payload.CustomerUserErrors), nil
}

const customerRecoverMutation = `
mutation customerRecover($email: String!) {
  customerRecover(email: $email) {
    customerUserErrors {
      code
      field
      message
    }
  }
}`

func (a *CustomerAPI) Recover(ctx context.Context, email string) ([]customer.UserError, error) {
	var data struct {
		CustomerRecover struct {
			CustomerUserErrors []userErrorPayload `json:"customerUserErrors"`
		} `json:"customerRecover"`
	}
	if err := a.client.do(ctx, customerRecoverMutation, map[string]any{"email": email}, &data); err != nil {
		return nil, err
	}
	return toUserErrors(data.CustomerRecover.CustomerUserErrors), nil
}

const customerUpdateMutation = `
mutation customerUpdate($customerAccessToken: String!, $customer: CustomerUpdateInput!) {
  customerUpdate(customerAccessToken: $customerAccessToken, customer: $customer) {
    customerUserErrors {
      code
      field
      message
    }
  }
}`

func (a *CustomerAPI) Update(ctx context.Context, accessToken string, fields ports.ProfileUpdate) ([]customer.UserError, error) {
	update := map[string]any{}
	if fields.FirstName != nil {
		update["firstName"] = *fields.FirstName
	}
	if fields.LastName != nil {
		update["lastName"] = *fields.LastName
	}
	if fields.Email != nil {
		update["email"] = *fields.Email
	}
	if fields.Phone != nil {
		update["phone"] = *fields.Phone
	}
	if fields.Password != nil {
		update["password"] = *fields.Password
	}

	var data struct {
		CustomerUpdate struct {
			CustomerUserErrors []userErrorPayload `json:"customerUserErrors"`
		} `json:"customerUpdate"`
	}
	err := a.client.do(ctx, customerUpdateMutation, map[string]any{
		"customerAccessToken": accessToken,
		"customer":            update,
	}, &data)
	if err != nil {
		return nil, err
	}
	return toUserErrors(data.CustomerUpdate.CustomerUserErrors), nil
}

const addressFieldsFragment = `
fragment AddressFields on MailingAddress {
  id
  firstName
  lastName
  company
  address1
  address2
  city
  province
  zip
  country
  phone
}`

const customerDetailsQuery = `
query CustomerDetails($customerAccessToken: String!) {
  customer(customerAccessToken: $customerAccessToken) {
    id
    firstName
    lastName
    email
    phone
    defaultAddress {
      ...AddressFields
    }
    addresses(first: 250) {
      edges {
        node {
          ...AddressFields
        }
      }
    }
    orders(first: 10, sortKey: PROCESSED_AT, reverse: true) {
      edges {
        node {
          id
          orderNumber
          processedAt
          financialStatus
          fulfillmentStatus
          currentTotalPrice {
            amount
            currencyCode
          }
        }
      }
    }
  }
}` + addressFieldsFragment

func (a *CustomerAPI) GetCustomer(ctx context.Context, accessToken string) (*customer.Customer, error) {
	var data struct {
		Customer *struct {
			ID             string            `json:"id"`
			FirstName      string            `json:"firstName"`
			LastName       string            `json:"lastName"`
			Email          string            `json:"email"`
			Phone          string            `json:"phone"`
			DefaultAddress *customer.Address `json:"defaultAddress"`
			Addresses      struct {
				Edges []struct {
					Node customer.Address `json:"node"`
				} `json:"edges"`
			} `json:"addresses"`
			Orders struct {
				Edges []struct {
					Node struct {
						ID                string         `json:"id"`
						OrderNumber       int            `json:"orderNumber"`
						ProcessedAt       time.Time      `json:"processedAt"`
						FinancialStatus   string         `json:"financialStatus"`
						FulfillmentStatus string         `json:"fulfillmentStatus"`
						CurrentTotalPrice customer.Money `json:"currentTotalPrice"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"orders"`
		} `json:"customer"`
	}
	err := a.client.do(ctx, customerDetailsQuery, map[string]any{
		"customerAccessToken": accessToken,
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, ports.ErrCustomerNotFound
	}

	out := &customer.Customer{
		ID:             data.Customer.ID,
		FirstName:      data.Customer.FirstName,
		LastName:       data.Customer.LastName,
		Email:          data.Customer.Email,
		Phone:          data.Customer.Phone,
		DefaultAddress: data.Customer.DefaultAddress,
	}
	for _, edge := range data.Customer.Addresses.Edges {
		out.Addresses = append(out.Addresses, edge.Node)
	}
	for _, edge := range data.Customer.Orders.Edges {
		out.Orders = append(out.Orders, customer.Order{
			ID:                edge.Node.ID,
			OrderNumber:       edge.Node.OrderNumber,
			ProcessedAt:       edge.Node.ProcessedAt,
			FinancialStatus:   edge.Node.FinancialStatus,
			FulfillmentStatus: edge.Node.FulfillmentStatus,
			Total:             edge.Node.CurrentTotalPrice,
		})
	}
	return out, nil
}

const customerAddressCreateMutation = `
mutation customerAddressCreate($customerAccessToken: String!, $address: MailingAddressInput!) {
  customerAddressCreate(customerAccessToken: $customerAccessToken, address: $address) {
    customerUserErrors {
      code
      field
      message
    }
    customerAddress {
      id
    }
  }
}`

func (a *CustomerAPI) CreateAddress(ctx context.Context, accessToken string, fields customer.AddressInput) (string, []customer.UserError, error) {
	var data struct {
		CustomerAddressCreate struct {
			CustomerUserErrors []userErrorPayload `json:"customerUserErrors"`
			CustomerAddress    *struct {
				ID string `json:"id"`
			} `json:"customerAddress"`
		} `json:"customerAddressCreate"`
	}
	err := a.client.do(ctx, customerAddressCreateMutation, map[string]any{
		"customerAccessToken": accessToken,
		"address":             fields,
	}, &data)
	if err != nil {
		return "", nil, err
	}
	payload := data.CustomerAddressCreate
	id := ""
	if payload.CustomerAddress != nil {
		id = payload.CustomerAddress.ID
	}
	return id, toUserErrors(payload.CustomerUserErrors), nil
}

const customerAddressUpdateMutation = `
mutation customerAddressUpdate($customerAccessToken: String!, $id: ID!, $address: MailingAddressInput!) {
  customerAddressUpdate(customerAccessToken: $customerAccessToken, id: $id, address: $address) {
    customerUserErrors {
      code
      field
      message
    }
  }
}`

func (a *CustomerAPI) UpdateAddress(ctx context.Context, accessToken, id string, fields customer.AddressInput) ([]customer.UserError, error) {
	var data struct {
		CustomerAddressUpdate struct {
			CustomerUserErrors []userErrorPayload `json:"customerUserErrors"`
		} `json:"customerAddressUpdate"`
	}
	err := a.client.do(ctx, customerAddressUpdateMutation, map[string]any{
		"customerAccessToken": accessToken,
		"id":                  id,
		"address":             fields,
	}, &data)
	if err != nil {
		return nil, err
	}
	return toUserErrors(data.CustomerAddressUpdate.CustomerUserErrors), nil
}

const customerAddressDeleteMutation = `
mutation customerAddressDelete($customerAccessToken: String!, $id: ID!) {
  customerAddressDelete(customerAccessToken: $customerAccessToken, id: $id) {
    customerUserErrors {
      code
      field
      message
    }
  }
}`

func (a *CustomerAPI) DeleteAddress(ctx context.Context, accessToken, id string) ([]customer.UserError, error) {
	var data struct {
		CustomerAddressDelete struct {
			CustomerUserErrors []userErrorPayload `json:"customerUserErrors"`
		} `json:"customerAddressDelete"`
	}
	err := a.client.do(ctx, customerAddressDeleteMutation, map[string]any{
		"customerAccessToken": accessToken,
		"id":                  id,
	}, &data)
	if err != nil {
		return nil, err
	}
	return toUserErrors(data.CustomerAddressDelete.CustomerUserErrors), nil
}

const customerDefaultAddressUpdateMutation = `
mutation customerDefaultAddressUpdate($customerAccessToken: String!, $addressId: ID!) {
  customerDefaultAddressUpdate(customerAccessToken: $customerAccessToken, addressId: $addressId) {
    customerUserErrors {
      code
      field
      message
    }
  }
}`

func (a *CustomerAPI) SetDefaultAddress(ctx context.Context, accessToken, id string) ([]customer.UserError, error) {
	var data struct {
		CustomerDefaultAddressUpdate struct {
			CustomerUserErrors []userErrorPayload `json:"customerUserErrors"`
		} `json:"customerDefaultAddressUpdate"`
	}
	err := a.client.do(ctx, customerDefaultAddressUpdateMutation, map[string]any{
		"customerAccessToken": accessToken,
		"addressId":           id,
	}, &data)
	if err != nil {
		return nil, err
	}
	return toUserErrors(data.CustomerDefaultAddressUpdate.CustomerUserErrors), nil
}
