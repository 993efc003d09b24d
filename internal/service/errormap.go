package service

import (
	"strings"

	"github.com/hallyustars/storefront-go/internal/domain/customer"
	"github.com/hallyustars/storefront-go/internal/ports"
)

// Op identifies the operation a remote failure came from. The message
// catalog is keyed by Op, never by remote wording, so upstream copy changes
// cannot leak into the UI.
type Op string

const (
	OpLogin             Op = "login"
	OpActivate          Op = "activate"
	OpRecover           Op = "recover"
	OpUpdateProfile     Op = "update-profile"
	OpCreateAddress     Op = "create-address"
	OpUpdateAddress     Op = "update-address"
	OpDeleteAddress     Op = "delete-address"
	OpSetDefaultAddress Op = "set-default-address"
)

// Localized messages shown to shoppers. The storefront is Spanish-first;
// the password field messages match the account form's copy.
const (
	msgServiceUnavailable = "Algo salió mal. Por favor, inténtalo de nuevo más tarde."
	msgSomethingWentWrong = "Algo salió mal. Por favor, intenta de nuevo más tarde."

	msgLoginMissingFields = "Please provide both an email and a password."
	msgBadCredentials     = "Lo siento. No reconocimos tu correo electrónico o contraseña. " +
		"Por favor, intenta iniciar sesión de nuevo o crea una nueva cuenta."

	msgActivationBadLink  = "Wrong token. The link you followed might be wrong."
	msgActivationMismatch = "Please provide matching passwords"
	msgActivationFailed   = "Lo siento. No pudimos activar su cuenta."

	msgRecoverMissingEmail = "Por favor, proporciona un correo electrónico."

	msgCurrentPasswordRequired = "Please enter your current password before entering a new password."
	msgNewPasswordsMustMatch   = "New passwords must match."

	msgAddressIDRequired = "Debes proporcionar un ID de dirección."
	msgAddressNotCreated = "Se esperaba que se creara la dirección del cliente."
)

// formErrorCatalog holds the canned form-level message for operations whose
// remote user errors must not be echoed verbatim.
var formErrorCatalog = map[Op]string{
	OpLogin:    msgBadCredentials,
	OpActivate: msgActivationFailed,
}

// MapUserErrors converts a remote user-error list into an ActionError.
// Errors carrying a field hint become field errors keyed by the hint's final
// path segment; hintless lists fall back to the operation's canned message,
// or to the remote text for operations without one (address mutations, whose
// messages are already shopper-facing).
func MapUserErrors(op Op, errs []customer.UserError) *ActionError {
	if len(errs) == 0 {
		return nil
	}

	fields := make(map[string]string)
	for _, e := range errs {
		if name := fieldName(e.Field); name != "" {
			fields[name] = e.Message
		}
	}
	if len(fields) > 0 {
		return &ActionError{FieldErrors: fields}
	}

	if msg, ok := formErrorCatalog[op]; ok {
		return formError(msg)
	}
	return formError(joinUserErrorMessages(errs))
}

// MapError converts a failure from the remote call boundary into an
// ActionError. API-level failures get the "service unavailable" message;
// anything unrecognized fails closed with a generic message so raw internals
// never reach the browser.
func MapError(op Op, err error) *ActionError {
	if actionErr, ok := AsActionError(err); ok {
		return actionErr
	}
	if ports.IsAPIError(err) {
		return formError(msgServiceUnavailable)
	}
	return formError(msgSomethingWentWrong)
}

// fieldName extracts the shopper-facing field name from a user error's field
// path, skipping wrapper segments like "input" or "customer".
func fieldName(path []string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case "", "input", "customer", "address":
			continue
		default:
			return path[i]
		}
	}
	return ""
}

func joinUserErrorMessages(errs []customer.UserError) string {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Message != "" {
			messages = append(messages, e.Message)
		}
	}
	if len(messages) == 0 {
		return msgSomethingWentWrong
	}
	return strings.Join(messages, " ")
}
