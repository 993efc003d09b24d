package storefront

// Package storefront is the adapter for the remote commerce GraphQL API. It
// owns the wire documents and maps GraphQL results into domain types and
// user-error lists; transport failures surface as *ports.APIError.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hallyustars/storefront-go/internal/ports"
)

// Config holds configuration for the storefront client.
type Config struct {
	// Endpoint is the full GraphQL endpoint URL.
	Endpoint string
	// AccessToken is the public storefront API access token.
	AccessToken string
	// HTTPClient is optional; a 30s-timeout client is used when nil.
	HTTPClient *http.Client
}

// Client executes GraphQL documents against the commerce API. It performs no
// retries; a hung call is bounded only by the HTTP client's timeout.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient creates a storefront API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("storefront endpoint is required")
	}
	if cfg.AccessToken == "" {
		return nil, errors.New("storefront access token is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		token:      cfg.AccessToken,
		httpClient: httpClient,
	}, nil
}

// graphqlEnvelope is the standard GraphQL response shape.
type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// do posts a GraphQL document and decodes the data payload into out.
// Any failure before a well-formed data payload becomes a *ports.APIError.
func (c *Client) do(ctx context.Context, document string, variables map[string]any, out any) error {
	payload, err := json.Marshal(map[string]any{
		"query":     document,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ports.APIError{Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &ports.APIError{Status: resp.StatusCode, Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return &ports.APIError{Status: resp.StatusCode, Cause: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var envelope graphqlEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &ports.APIError{Status: resp.StatusCode, Cause: fmt.Errorf("decode graphql response: %w", err)}
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return &ports.APIError{Status: resp.StatusCode, Messages: messages}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &ports.APIError{Status: resp.StatusCode, Cause: fmt.Errorf("decode graphql data: %w", err)}
	}
	return nil
}
