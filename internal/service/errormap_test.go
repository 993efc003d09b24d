package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hallyustars/storefront-go/internal/domain/customer"
	"github.com/hallyustars/storefront-go/internal/ports"
)

func TestMapUserErrors_FieldHints(t *testing.T) {
	t.Parallel()

	actionErr := MapUserErrors(OpUpdateProfile, []customer.UserError{
		{Field: []string{"input", "email"}, Message: "Email has already been taken"},
		{Field: []string{"input", "phone"}, Message: "Phone is invalid"},
	})
	require.NotNil(t, actionErr)
	assert.Empty(t, actionErr.FormError)
	assert.Equal(t, "Email has already been taken", actionErr.FieldErrors["email"])
	assert.Equal(t, "Phone is invalid", actionErr.FieldErrors["phone"])
}

func TestMapUserErrors_WrapperSegmentsSkipped(t *testing.T) {
	t.Parallel()

	actionErr := MapUserErrors(OpUpdateAddress, []customer.UserError{
		{Field: []string{"address", "zip"}, Message: "Zip is invalid"},
	})
	require.NotNil(t, actionErr)
	assert.Equal(t, "Zip is invalid", actionErr.FieldErrors["zip"])
}

func TestMapUserErrors_CatalogFallback(t *testing.T) {
	t.Parallel()

	actionErr := MapUserErrors(OpActivate, []customer.UserError{
		{Code: "TOKEN_INVALID", Message: "internal wording"},
	})
	require.NotNil(t, actionErr)
	assert.Equal(t, msgActivationFailed, actionErr.FormError, "cataloged operations never echo remote wording")
}

func TestMapUserErrors_UncatalogedJoinsMessages(t *testing.T) {
	t.Parallel()

	actionErr := MapUserErrors(OpDeleteAddress, []customer.UserError{
		{Message: "Cannot delete the customer's default address"},
	})
	require.NotNil(t, actionErr)
	assert.Equal(t, "Cannot delete the customer's default address", actionErr.FormError)
}

func TestMapUserErrors_Empty(t *testing.T) {
	t.Parallel()
	assert.Nil(t, MapUserErrors(OpLogin, nil))
}

func TestMapError(t *testing.T) {
	t.Parallel()

	t.Run("action error passes through", func(t *testing.T) {
		t.Parallel()
		in := formError("already mapped")
		assert.Same(t, in, MapError(OpLogin, in))
	})

	t.Run("api error gets service message", func(t *testing.T) {
		t.Parallel()
		actionErr := MapError(OpLogin, &ports.APIError{Status: 502})
		assert.Equal(t, msgServiceUnavailable, actionErr.FormError)
	})

	t.Run("unknown error fails closed", func(t *testing.T) {
		t.Parallel()
		actionErr := MapError(OpLogin, errors.New("boom"))
		assert.Equal(t, msgSomethingWentWrong, actionErr.FormError)
	})
}
