package dto

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/pamfilico/stripe-customer-service/internal/domain/errors"
)

var validate = validator.New()

// Pagination constants. Stripe caps list pages at 100 items; larger limits
// are capped, not rejected.
const (
	DefaultPageSize = 100
	MaxPageSize     = 100
	MinPageSize     = 1
)

// CustomerCreateInput carries the caller-supplied fields for customer
// creation. Every field is optional; an empty input is a valid request.
type CustomerCreateInput struct {
	Email       *string           `json:"email,omitempty" validate:"omitnil,email"`
	Name        *string           `json:"name,omitempty" validate:"omitnil,min=1,max=255"`
	Phone       *string           `json:"phone,omitempty"`
	Description *string           `json:"description,omitempty" validate:"omitnil,max=500"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Validate checks field shapes and bounds before any network call.
func (in *CustomerCreateInput) Validate() error {
	return validateStruct(in)
}

// CustomerUpdateInput carries the fields to change on an existing customer.
// A nil field means "no change". For Metadata, nil means "no change" while a
// non-nil empty map clears all metadata.
type CustomerUpdateInput struct {
	Email       *string           `json:"email,omitempty" validate:"omitnil,email"`
	Name        *string           `json:"name,omitempty" validate:"omitnil,min=1,max=255"`
	Phone       *string           `json:"phone,omitempty"`
	Description *string           `json:"description,omitempty" validate:"omitnil,max=500"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Validate checks field shapes and bounds before any network call.
func (in *CustomerUpdateInput) Validate() error {
	return validateStruct(in)
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if domainErrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := fmt.Sprintf("invalid %s: failed %q constraint", strings.ToLower(fe.Field()), fe.Tag())
		return domainErrors.NewValidationError(msg, err)
	}
	return domainErrors.NewValidationError("invalid input", err)
}

// CustomerData is the canonical snapshot of a provider customer record. ID is
// always present; everything else reflects the provider's state at call time.
type CustomerData struct {
	ID          string            `json:"id"`
	Email       string            `json:"email,omitempty"`
	Name        string            `json:"name,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Description string            `json:"description,omitempty"`
	Created     int64             `json:"created,omitempty"`
	Balance     int64             `json:"balance"`
	Currency    string            `json:"currency,omitempty"`
	Delinquent  bool              `json:"delinquent"`
	Metadata    map[string]string `json:"metadata"`
}

// CustomerResponse wraps a single customer. Meta is currently always empty
// and reserved for future extension.
type CustomerResponse struct {
	Data CustomerData           `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}

// CustomerListMeta describes one page of a customer listing.
type CustomerListMeta struct {
	HasMore bool `json:"has_more"`
	// PageCount counts the items in this page only, never a global total.
	PageCount int    `json:"page_count"`
	Note      string `json:"note,omitempty"`
}

// CustomerListResponse holds an ordered page of customers plus its metadata.
type CustomerListResponse struct {
	Data []CustomerData   `json:"data"`
	Meta CustomerListMeta `json:"meta"`
}

// CustomerDeleteResponse acknowledges a customer deletion.
type CustomerDeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// NewCustomerListMeta builds the page metadata shared by both list-bearing
// operations, including the pluralized summary note.
func NewCustomerListMeta(count int, hasMore bool) CustomerListMeta {
	note := fmt.Sprintf("Found %d customers", count)
	if count == 1 {
		note = "Found 1 customer"
	}
	return CustomerListMeta{
		HasMore:   hasMore,
		PageCount: count,
		Note:      note,
	}
}

// ClampLimit normalizes a requested page size to the provider's bounds.
// Callers passing a larger value are silently capped, not rejected.
func ClampLimit(limit int64) int64 {
	if limit < MinPageSize {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
