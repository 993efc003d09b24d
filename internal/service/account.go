package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hallyustars/storefront-go/internal/domain/customer"
	"github.com/hallyustars/storefront-go/internal/ports"
)

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	API ports.CustomerAPI
}

// AccountService orchestrates shopper account flows against the commerce
// API: sign-in, activation, password recovery, profile edits, and the
// address book. It validates input locally before any remote call and maps
// remote failures into ActionError values fit for form rendering.
type AccountService struct {
	api ports.CustomerAPI
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) *AccountService {
	return &AccountService{api: opts.API}
}

// Login exchanges shopper credentials for an access token. Credential
// failures collapse into a single generic message regardless of which
// credential was wrong.
func (s *AccountService) Login(ctx context.Context, email, password string) (customer.AccessToken, error) {
	if email == "" || password == "" {
		return customer.AccessToken{}, formError(msgLoginMissingFields)
	}

	token, userErrs, err := s.api.CreateAccessToken(ctx, email, password)
	if err != nil {
		return customer.AccessToken{}, MapError(OpLogin, err)
	}
	if len(userErrs) > 0 || token == nil || token.Token == "" {
		return customer.AccessToken{}, formError(msgBadCredentials)
	}
	return *token, nil
}

// ActivateParams groups the inputs for account activation.
type ActivateParams struct {
	CustomerID      string
	ActivationToken string
	Password        string
	PasswordConfirm string
}

// Activate sets the initial password on a pending account using the token
// from the activation email and returns the freshly minted access token.
func (s *AccountService) Activate(ctx context.Context, params ActivateParams) (customer.AccessToken, error) {
	if params.CustomerID == "" || params.ActivationToken == "" {
		return customer.AccessToken{}, formError(msgActivationBadLink)
	}
	if params.Password == "" || params.Password != params.PasswordConfirm {
		return customer.AccessToken{}, fieldError("passwordConfirm", msgActivationMismatch)
	}

	token, userErrs, err := s.api.Activate(ctx, ports.ActivateInput{
		CustomerID:      params.CustomerID,
		ActivationToken: params.ActivationToken,
		Password:        params.Password,
	})
	if err != nil {
		return customer.AccessToken{}, MapError(OpActivate, err)
	}
	if len(userErrs) > 0 || token == nil || token.Token == "" {
		return customer.AccessToken{}, formError(msgActivationFailed)
	}
	return *token, nil
}

// Recover requests a password reset email. User errors from the remote side
// are swallowed: whether or not the address maps to an account, the caller
// reports the same outcome so addresses cannot be enumerated.
func (s *AccountService) Recover(ctx context.Context, email string) error {
	if email == "" {
		return fieldError("email", msgRecoverMissingEmail)
	}

	if _, err := s.api.Recover(ctx, email); err != nil {
		return MapError(OpRecover, err)
	}
	return nil
}

// ProfileParams groups the editable profile fields. Password fields travel
// together: setting a new password requires the current one and a matching
// confirmation.
type ProfileParams struct {
	FirstName        *string
	LastName         *string
	Email            *string
	Phone            *string
	CurrentPassword  string
	NewPassword      string
	NewPasswordAgain string
}

// UpdateProfile applies profile edits for the customer behind token.
// The access token is re-verified against the API before the mutation so a
// revoked token fails with ErrCustomerNotFound rather than a remote user
// error.
func (s *AccountService) UpdateProfile(ctx context.Context, token string, params ProfileParams) error {
	if params.NewPassword != "" && params.CurrentPassword == "" {
		return fieldError("currentPassword", msgCurrentPasswordRequired)
	}
	if params.NewPassword != params.NewPasswordAgain {
		return fieldError("newPassword2", msgNewPasswordsMustMatch)
	}

	if _, err := s.api.GetCustomer(ctx, token); err != nil {
		return err
	}

	update := ports.ProfileUpdate{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		Phone:     params.Phone,
	}
	if params.NewPassword != "" {
		update.Password = &params.NewPassword
	}

	userErrs, err := s.api.Update(ctx, token, update)
	if err != nil {
		return MapError(OpUpdateProfile, err)
	}
	if actionErr := MapUserErrors(OpUpdateProfile, userErrs); actionErr != nil {
		return actionErr
	}
	return nil
}

// AddressParams groups the inputs for creating or updating an address.
// AddressID carries the sentinel customer.NewAddressID for creation.
type AddressParams struct {
	AddressID   string
	Fields      customer.AddressInput
	MakeDefault bool
}

// UpsertAddressResult reports the outcome of UpsertAddress. DefaultErr is
// non-nil when the address was written but promoting it to the default
// failed; callers decide whether that is fatal.
type UpsertAddressResult struct {
	AddressID  string
	DefaultErr error
}

// UpsertAddress creates or updates an address and optionally promotes it to
// the customer's default. A failed promotion after a successful write is
// reported via DefaultErr instead of an error so the write is not presented
// as lost.
func (s *AccountService) UpsertAddress(ctx context.Context, token string, params AddressParams) (UpsertAddressResult, error) {
	if params.AddressID == "" {
		return UpsertAddressResult{}, formError(msgAddressIDRequired)
	}

	if params.AddressID == customer.NewAddressID {
		return s.createAddress(ctx, token, params)
	}
	return s.updateAddress(ctx, token, params)
}

func (s *AccountService) createAddress(ctx context.Context, token string, params AddressParams) (UpsertAddressResult, error) {
	id, userErrs, err := s.api.CreateAddress(ctx, token, params.Fields)
	if err != nil {
		return UpsertAddressResult{}, MapError(OpCreateAddress, err)
	}
	if actionErr := MapUserErrors(OpCreateAddress, userErrs); actionErr != nil {
		return UpsertAddressResult{}, actionErr
	}
	if id == "" {
		return UpsertAddressResult{}, formError(msgAddressNotCreated)
	}

	result := UpsertAddressResult{AddressID: id}
	if params.MakeDefault {
		result.DefaultErr = s.setDefault(ctx, token, id)
	}
	return result, nil
}

func (s *AccountService) updateAddress(ctx context.Context, token string, params AddressParams) (UpsertAddressResult, error) {
	id, err := s.resolveAddressID(ctx, token, params.AddressID)
	if err != nil {
		return UpsertAddressResult{}, err
	}

	userErrs, err := s.api.UpdateAddress(ctx, token, id, params.Fields)
	if err != nil {
		return UpsertAddressResult{}, MapError(OpUpdateAddress, err)
	}
	if actionErr := MapUserErrors(OpUpdateAddress, userErrs); actionErr != nil {
		return UpsertAddressResult{}, actionErr
	}

	result := UpsertAddressResult{AddressID: id}
	if params.MakeDefault {
		result.DefaultErr = s.setDefault(ctx, token, id)
	}
	return result, nil
}

func (s *AccountService) setDefault(ctx context.Context, token, addressID string) error {
	userErrs, err := s.api.SetDefaultAddress(ctx, token, addressID)
	if err != nil {
		return fmt.Errorf("set default address: %w", err)
	}
	if len(userErrs) > 0 {
		return fmt.Errorf("set default address: %s", joinUserErrorMessages(userErrs))
	}
	return nil
}

// DeleteAddress removes an address from the customer's address book. Remote
// refusals surface their message verbatim as a form error.
func (s *AccountService) DeleteAddress(ctx context.Context, token, rawID string) error {
	if rawID == "" {
		return formError(msgAddressIDRequired)
	}

	id, err := s.resolveAddressID(ctx, token, rawID)
	if err != nil {
		return err
	}

	userErrs, err := s.api.DeleteAddress(ctx, token, id)
	if err != nil {
		return MapError(OpDeleteAddress, err)
	}
	if len(userErrs) > 0 {
		return formError(joinUserErrorMessages(userErrs))
	}
	return nil
}

// resolveAddressID maps a possibly stale address id from the client onto the
// matching id in the customer's current address book. Address ids rotate on
// every write, so the client's copy is matched by its stable prefix.
func (s *AccountService) resolveAddressID(ctx context.Context, token, rawID string) (string, error) {
	normalized := customer.NormalizeAddressID(rawID)
	if normalized == "" {
		return "", formError(msgAddressIDRequired)
	}

	cust, err := s.api.GetCustomer(ctx, token)
	if err != nil {
		return "", err
	}
	if addr := customer.FindAddress(cust.Addresses, normalized); addr != nil {
		return addr.ID, nil
	}

	// No live address shares the prefix. Pass the normalized id through and
	// let the remote mutation report the refusal.
	if strings.Contains(normalized, "gid://") {
		return normalized, nil
	}
	return "", formError(msgAddressIDRequired)
}

// GetCustomer fetches the full customer record behind token, including the
// address book and default address.
func (s *AccountService) GetCustomer(ctx context.Context, token string) (*customer.Customer, error) {
	return s.api.GetCustomer(ctx, token)
}
