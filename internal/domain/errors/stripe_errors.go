package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v79"
)

// Re-exposed standard library helpers
var (
	Is = errors.Is
	As = errors.As
)

// Error codes for customer operations
const (
	CodeValidation     = "VALIDATION"
	CodeAuthentication = "AUTHENTICATION"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeAPI            = "API_ERROR"
)

// StripeError carries a human-readable message, a taxonomy code and the
// original upstream cause. Provider failures are never swallowed: every
// operation surfaces one of the four codes with the cause retrievable
// through Unwrap.
type StripeError struct {
	code    string
	message string
	err     error
}

func (e *StripeError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *StripeError) Code() string {
	return e.code
}

func (e *StripeError) Unwrap() error {
	return e.err
}

// NewValidationError reports a local input-validation failure. These are
// raised before any network call is made.
func NewValidationError(message string, err error) *StripeError {
	return &StripeError{code: CodeValidation, message: message, err: err}
}

// NewAuthenticationError reports rejected provider credentials.
func NewAuthenticationError(message string, err error) *StripeError {
	return &StripeError{code: CodeAuthentication, message: message, err: err}
}

// NewInvalidRequestError reports a request the provider rejected as malformed.
func NewInvalidRequestError(message string, err error) *StripeError {
	return &StripeError{code: CodeInvalidRequest, message: message, err: err}
}

// NewAPIError reports any other provider-side failure, including transient
// and network faults.
func NewAPIError(message string, err error) *StripeError {
	return &StripeError{code: CodeAPI, message: message, err: err}
}

// FromStripe classifies a stripe-go failure into the taxonomy. Authentication
// failures arrive as HTTP 401; malformed parameters carry the
// invalid_request_error type; everything else is a generic API failure.
func FromStripe(err error, message string) *StripeError {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch {
		case stripeErr.HTTPStatusCode == http.StatusUnauthorized:
			return NewAuthenticationError(message, err)
		case stripeErr.Type == stripe.ErrorTypeInvalidRequest:
			return NewInvalidRequestError(message, err)
		}
	}
	return NewAPIError(message, err)
}

// CodeOf returns the taxonomy code of err, or an empty string for errors
// outside the taxonomy.
func CodeOf(err error) string {
	var se *StripeError
	if errors.As(err, &se) {
		return se.Code()
	}
	return ""
}

var codeToHTTPStatus = map[string]int{
	CodeValidation:     http.StatusBadRequest,
	CodeInvalidRequest: http.StatusBadRequest,
	CodeAuthentication: http.StatusUnauthorized,
	CodeAPI:            http.StatusBadGateway,
}

// ToHTTPStatus maps an error to the HTTP status the handler layer should
// respond with.
func ToHTTPStatus(err error) int {
	var se *StripeError
	if errors.As(err, &se) {
		if status, ok := codeToHTTPStatus[se.Code()]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}
