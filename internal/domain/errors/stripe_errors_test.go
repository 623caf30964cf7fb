package errors_test

import (
	stdErrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"

	domainErrors "github.com/pamfilico/stripe-customer-service/internal/domain/errors"
)

func TestFromStripe(t *testing.T) {
	t.Run("401 becomes authentication failure", func(t *testing.T) {
		cause := &stripe.Error{
			Type:           stripe.ErrorTypeInvalidRequest,
			Msg:            "Invalid API Key provided",
			HTTPStatusCode: http.StatusUnauthorized,
		}
		err := domainErrors.FromStripe(cause, "failed to create customer")
		assert.Equal(t, domainErrors.CodeAuthentication, err.Code())
		assert.True(t, stdErrors.Is(err, cause))
	})

	t.Run("invalid_request_error becomes invalid request", func(t *testing.T) {
		cause := &stripe.Error{
			Type:           stripe.ErrorTypeInvalidRequest,
			Msg:            "No such customer",
			HTTPStatusCode: http.StatusNotFound,
		}
		err := domainErrors.FromStripe(cause, "failed to retrieve customer")
		assert.Equal(t, domainErrors.CodeInvalidRequest, err.Code())
	})

	t.Run("other stripe errors become API failures", func(t *testing.T) {
		cause := &stripe.Error{
			Type:           stripe.ErrorTypeAPI,
			Msg:            "An unknown error occurred",
			HTTPStatusCode: http.StatusInternalServerError,
		}
		err := domainErrors.FromStripe(cause, "failed to list customers")
		assert.Equal(t, domainErrors.CodeAPI, err.Code())
	})

	t.Run("non-stripe errors become API failures", func(t *testing.T) {
		cause := stdErrors.New("connection reset by peer")
		err := domainErrors.FromStripe(cause, "failed to list customers")
		assert.Equal(t, domainErrors.CodeAPI, err.Code())
		assert.True(t, stdErrors.Is(err, cause))
	})
}

func TestStripeError_Error(t *testing.T) {
	t.Run("includes the cause", func(t *testing.T) {
		cause := stdErrors.New("boom")
		err := domainErrors.NewAPIError("failed to create customer", cause)
		assert.Equal(t, "failed to create customer: boom", err.Error())
	})

	t.Run("message only without cause", func(t *testing.T) {
		err := domainErrors.NewValidationError("customer id must not be empty", nil)
		assert.Equal(t, "customer id must not be empty", err.Error())
		assert.Nil(t, err.Unwrap())
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, domainErrors.CodeValidation, domainErrors.CodeOf(domainErrors.NewValidationError("bad", nil)))
	assert.Equal(t, "", domainErrors.CodeOf(stdErrors.New("plain")))
}

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domainErrors.NewValidationError("bad", nil), http.StatusBadRequest},
		{"invalid request", domainErrors.NewInvalidRequestError("bad", nil), http.StatusBadRequest},
		{"authentication", domainErrors.NewAuthenticationError("bad key", nil), http.StatusUnauthorized},
		{"api", domainErrors.NewAPIError("down", nil), http.StatusBadGateway},
		{"untyped", stdErrors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, domainErrors.ToHTTPStatus(tc.err))
		})
	}
}

func TestWrappedCauseIsInspectable(t *testing.T) {
	cause := &stripe.Error{Type: stripe.ErrorTypeInvalidRequest, Msg: "bad param"}
	err := domainErrors.FromStripe(cause, "failed to update customer")

	var stripeErr *stripe.Error
	require.True(t, stdErrors.As(err, &stripeErr))
	assert.Equal(t, "bad param", stripeErr.Msg)
}
