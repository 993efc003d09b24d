package ports

import (
	"errors"
	"strings"
)

// APIError marks a transport- or API-level failure from the remote commerce
// API: the network call failed, the response was malformed, or the GraphQL
// layer itself errored. Business-rule rejections are not APIErrors; those
// arrive as user-error lists. The client adapter decides which variant it
// produces; callers check with IsAPIError rather than inspecting messages.
type APIError struct {
	// Status is the HTTP status of the response, or 0 when the request
	// never completed.
	Status int
	// Messages holds GraphQL top-level error messages, when any.
	Messages []string
	// Cause is the underlying error, when any.
	Cause error
}

func (e *APIError) Error() string {
	switch {
	case len(e.Messages) > 0:
		return "storefront api: " + strings.Join(e.Messages, "; ")
	case e.Cause != nil:
		return "storefront api: " + e.Cause.Error()
	default:
		return "storefront api error"
	}
}

func (e *APIError) Unwrap() error { return e.Cause }

// IsAPIError reports whether err is (or wraps) an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// ErrCustomerNotFound is returned when a customer access token no longer
// resolves to a customer. The token is dead; callers log the session out.
var ErrCustomerNotFound = errors.New("customer not found")
