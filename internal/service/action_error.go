package service

import "errors"

// ActionError is the typed failure of an identity operation: either a single
// form-level message or per-field messages, never both raw remote text and
// internals. It is surfaced to the browser as a 400 payload and never
// persisted.
type ActionError struct {
	FormError   string
	FieldErrors map[string]string
}

func (e *ActionError) Error() string {
	if e.FormError != "" {
		return e.FormError
	}
	return "invalid form fields"
}

// AsActionError unwraps err into an *ActionError when it carries one.
func AsActionError(err error) (*ActionError, bool) {
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr, true
	}
	return nil, false
}

func formError(message string) *ActionError {
	return &ActionError{FormError: message}
}

func fieldError(field, message string) *ActionError {
	return &ActionError{FieldErrors: map[string]string{field: message}}
}
