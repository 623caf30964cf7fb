package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"github.com/pamfilico/stripe-customer-service/internal/domain/dto"
	domainErrors "github.com/pamfilico/stripe-customer-service/internal/domain/errors"
)

// CustomerService bridges validated local records to the Stripe customer API
// and back. Every operation validates first, issues exactly one outbound call
// and classifies any provider failure; there is no retrying, caching or
// shared mutable state beyond the keys captured at construction.
type CustomerService struct {
	sc             *client.API
	publishableKey string
	logger         *zap.Logger
}

// NewCustomerService creates a customer service. Both keys are supplied
// explicitly by the caller; the service never reads credentials from the
// environment.
func NewCustomerService(secretKey, publishableKey string, logger *zap.Logger) *CustomerService {
	return NewCustomerServiceWithBackends(secretKey, publishableKey, nil, logger)
}

// NewCustomerServiceWithBackends creates a customer service against custom
// Stripe backends. Tests use this to substitute the transport.
func NewCustomerServiceWithBackends(secretKey, publishableKey string, backends *stripe.Backends, logger *zap.Logger) *CustomerService {
	sc := &client.API{}
	sc.Init(secretKey, backends)
	return &CustomerService{
		sc:             sc,
		publishableKey: publishableKey,
		logger:         logger,
	}
}

// PublishableKey returns the browser-side key the service was constructed with.
func (s *CustomerService) PublishableKey() string {
	return s.publishableKey
}

// CreateCustomer creates a Stripe customer from the validated input. Only
// fields present on the input end up in the outbound parameter set; absent
// fields are omitted entirely, never sent as null. Each call carries a fresh
// idempotency key.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *dto.CustomerCreateInput) (*dto.CustomerResponse, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := &stripe.CustomerParams{}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(uuid.NewString())
	if input.Email != nil && *input.Email != "" {
		params.Email = stripe.String(*input.Email)
	}
	if input.Name != nil && *input.Name != "" {
		params.Name = stripe.String(*input.Name)
	}
	if input.Phone != nil && *input.Phone != "" {
		params.Phone = stripe.String(*input.Phone)
	}
	if input.Description != nil && *input.Description != "" {
		params.Description = stripe.String(*input.Description)
	}
	if len(input.Metadata) > 0 {
		params.Metadata = input.Metadata
	}

	cust, err := s.sc.Customers.New(params)
	if err != nil {
		s.logger.Error("Failed to create Stripe customer", zap.Error(err))
		return nil, domainErrors.FromStripe(err, "failed to create customer")
	}

	s.logger.Info("Stripe customer created", zap.String("customer_id", cust.ID))
	return newCustomerResponse(cust), nil
}

// GetCustomer retrieves a single customer by its Stripe ID.
func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (*dto.CustomerResponse, error) {
	if customerID == "" {
		return nil, domainErrors.NewValidationError("customer id must not be empty", nil)
	}

	params := &stripe.CustomerParams{}
	params.Context = ctx

	cust, err := s.sc.Customers.Get(customerID, params)
	if err != nil {
		s.logger.Error("Failed to retrieve Stripe customer",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return nil, domainErrors.FromStripe(err, "failed to retrieve customer")
	}

	return newCustomerResponse(cust), nil
}

// UpdateCustomer modifies an existing customer. Only fields the caller
// explicitly set are forwarded: a nil field is not sent, preserving
// "no change" semantics, while a non-nil empty metadata map clears all
// metadata.
func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID string, input *dto.CustomerUpdateInput) (*dto.CustomerResponse, error) {
	if customerID == "" {
		return nil, domainErrors.NewValidationError("customer id must not be empty", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := &stripe.CustomerParams{}
	params.Context = ctx
	if input.Email != nil {
		params.Email = stripe.String(*input.Email)
	}
	if input.Name != nil {
		params.Name = stripe.String(*input.Name)
	}
	if input.Phone != nil {
		params.Phone = stripe.String(*input.Phone)
	}
	if input.Description != nil {
		params.Description = stripe.String(*input.Description)
	}
	if input.Metadata != nil {
		params.Metadata = input.Metadata
	}

	cust, err := s.sc.Customers.Update(customerID, params)
	if err != nil {
		s.logger.Error("Failed to update Stripe customer",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return nil, domainErrors.FromStripe(err, "failed to update customer")
	}

	s.logger.Info("Stripe customer updated", zap.String("customer_id", cust.ID))
	return newCustomerResponse(cust), nil
}

// DeleteCustomer permanently deletes a customer and returns the provider's
// acknowledgement.
func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string) (*dto.CustomerDeleteResponse, error) {
	if customerID == "" {
		return nil, domainErrors.NewValidationError("customer id must not be empty", nil)
	}

	params := &stripe.CustomerParams{}
	params.Context = ctx

	cust, err := s.sc.Customers.Del(customerID, params)
	if err != nil {
		s.logger.Error("Failed to delete Stripe customer",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return nil, domainErrors.FromStripe(err, "failed to delete customer")
	}

	s.logger.Info("Stripe customer deleted", zap.String("customer_id", cust.ID))
	return &dto.CustomerDeleteResponse{
		ID:      cust.ID,
		Deleted: cust.Deleted,
	}, nil
}

// GetCustomersByEmail lists the customers matching an exact email address.
// Stripe allows multiple customers with the same email, so this is a list
// operation; has_more mirrors the provider's flag for this single call.
func (s *CustomerService) GetCustomersByEmail(ctx context.Context, email string) (*dto.CustomerListResponse, error) {
	if email == "" {
		return nil, domainErrors.NewValidationError("email must not be empty", nil)
	}

	params := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.Single = true

	return s.listCustomers(params)
}

// ListCustomers returns one page of customers. The limit is clamped to the
// provider's page-size ceiling before the call; startingAfter, when set, is
// the last-seen customer ID used as the keyset-pagination cursor.
func (s *CustomerService) ListCustomers(ctx context.Context, limit int64, startingAfter string) (*dto.CustomerListResponse, error) {
	params := &stripe.CustomerListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(dto.ClampLimit(limit))
	params.Single = true
	if startingAfter != "" {
		params.StartingAfter = stripe.String(startingAfter)
	}

	return s.listCustomers(params)
}

// listCustomers issues a single-page list call and normalizes the result.
// Single is set on every params value so the SDK iterator cannot fetch a
// second page behind our back.
func (s *CustomerService) listCustomers(params *stripe.CustomerListParams) (*dto.CustomerListResponse, error) {
	iter := s.sc.Customers.List(params)

	customers := make([]dto.CustomerData, 0)
	for iter.Next() {
		customers = append(customers, newCustomerData(iter.Customer()))
	}
	if err := iter.Err(); err != nil {
		s.logger.Error("Failed to list Stripe customers", zap.Error(err))
		return nil, domainErrors.FromStripe(err, "failed to list customers")
	}

	return &dto.CustomerListResponse{
		Data: customers,
		Meta: dto.NewCustomerListMeta(len(customers), iter.CustomerList().HasMore),
	}, nil
}

// newCustomerData maps a provider record into the canonical snapshot. All
// optional fields copy through as-is; metadata defaults to an empty map when
// the provider returns none.
func newCustomerData(cust *stripe.Customer) dto.CustomerData {
	metadata := cust.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return dto.CustomerData{
		ID:          cust.ID,
		Email:       cust.Email,
		Name:        cust.Name,
		Phone:       cust.Phone,
		Description: cust.Description,
		Created:     cust.Created,
		Balance:     cust.Balance,
		Currency:    string(cust.Currency),
		Delinquent:  cust.Delinquent,
		Metadata:    metadata,
	}
}

func newCustomerResponse(cust *stripe.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		Data: newCustomerData(cust),
		Meta: map[string]interface{}{},
	}
}
