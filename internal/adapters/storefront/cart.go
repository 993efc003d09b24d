package storefront

import (
	"context"
	"errors"
	"strings"

	"github.com/hallyustars/storefront-go/internal/ports"
)

// Ensure compile-time conformance to the port.
var _ ports.Cart = (*CartAPI)(nil)

// CartAPI implements the cart collaborator over the GraphQL client.
type CartAPI struct {
	client *Client
}

// NewCartAPI creates the cart adapter.
func NewCartAPI(client *Client) *CartAPI {
	return &CartAPI{client: client}
}

const cartBuyerIdentityUpdateMutation = `
mutation cartBuyerIdentityUpdate($cartId: ID!, $buyerIdentity: CartBuyerIdentityInput!) {
  cartBuyerIdentityUpdate(cartId: $cartId, buyerIdentity: $buyerIdentity) {
    cart {
      id
    }
    userErrors {
      field
      message
    }
  }
}`

// UpdateBuyerIdentity re-binds the cart to the given customer access token
// and returns the resulting cart, whose id may have changed.
func (a *CartAPI) UpdateBuyerIdentity(ctx context.Context, cartID, customerAccessToken string) (ports.CartSnapshot, error) {
	if cartID == "" {
		return ports.CartSnapshot{}, errors.New("cart id is required")
	}

	var data struct {
		CartBuyerIdentityUpdate struct {
			Cart *struct {
				ID string `json:"id"`
			} `json:"cart"`
			UserErrors []struct {
				Message string `json:"message"`
			} `json:"userErrors"`
		} `json:"cartBuyerIdentityUpdate"`
	}
	err := a.client.do(ctx, cartBuyerIdentityUpdateMutation, map[string]any{
		"cartId": cartID,
		"buyerIdentity": map[string]any{
			"customerAccessToken": customerAccessToken,
		},
	}, &data)
	if err != nil {
		return ports.CartSnapshot{}, err
	}

	payload := data.CartBuyerIdentityUpdate
	if len(payload.UserErrors) > 0 {
		messages := make([]string, 0, len(payload.UserErrors))
		for _, e := range payload.UserErrors {
			messages = append(messages, e.Message)
		}
		return ports.CartSnapshot{}, errors.New("cart buyer identity update: " + strings.Join(messages, "; "))
	}
	if payload.Cart == nil || payload.Cart.ID == "" {
		return ports.CartSnapshot{}, errors.New("cart buyer identity update returned no cart")
	}

	return ports.CartSnapshot{ID: payload.Cart.ID}, nil
}
