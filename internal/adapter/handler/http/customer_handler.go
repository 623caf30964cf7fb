package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pamfilico/stripe-customer-service/internal/domain/dto"
	domainErrors "github.com/pamfilico/stripe-customer-service/internal/domain/errors"
	"github.com/pamfilico/stripe-customer-service/internal/usecase"
)

type CustomerHandler struct {
	logger          *zap.Logger
	customerService *usecase.CustomerService
}

func NewCustomerHandler(logger *zap.Logger, customerService *usecase.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		logger:          logger,
		customerService: customerService,
	}
}

func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var input dto.CustomerCreateInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}

	h.logger.Info("Creating customer...")

	resp, err := h.customerService.CreateCustomer(c.Request().Context(), &input)
	if err != nil {
		return h.errorResponse(c, err, "Failed to create customer")
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	customerID := c.Param("id")

	resp, err := h.customerService.GetCustomer(c.Request().Context(), customerID)
	if err != nil {
		return h.errorResponse(c, err, "Failed to retrieve customer")
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	customerID := c.Param("id")

	var input dto.CustomerUpdateInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}

	h.logger.Info("Updating customer...", zap.String("customer_id", customerID))

	resp, err := h.customerService.UpdateCustomer(c.Request().Context(), customerID, &input)
	if err != nil {
		return h.errorResponse(c, err, "Failed to update customer")
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	customerID := c.Param("id")

	h.logger.Info("Deleting customer...", zap.String("customer_id", customerID))

	resp, err := h.customerService.DeleteCustomer(c.Request().Context(), customerID)
	if err != nil {
		return h.errorResponse(c, err, "Failed to delete customer")
	}

	return c.JSON(http.StatusOK, resp)
}

// ListCustomers serves both listing modes: an exact-email lookup when the
// email query parameter is present, and cursor-paginated listing otherwise.
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	if email := c.QueryParam("email"); email != "" {
		resp, err := h.customerService.GetCustomersByEmail(ctx, email)
		if err != nil {
			return h.errorResponse(c, err, "Failed to look up customers by email")
		}
		return c.JSON(http.StatusOK, resp)
	}

	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "limit must be an integer",
			})
		}
		limit = parsed
	}

	resp, err := h.customerService.ListCustomers(ctx, limit, c.QueryParam("starting_after"))
	if err != nil {
		return h.errorResponse(c, err, "Failed to list customers")
	}

	return c.JSON(http.StatusOK, resp)
}

// GetConfig exposes the publishable key for browser-side Stripe clients. The
// secret key never leaves the service.
func (h *CustomerHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"publishable_key": h.customerService.PublishableKey(),
	})
}

func (h *CustomerHandler) errorResponse(c echo.Context, err error, msg string) error {
	h.logger.Error(msg,
		zap.String("error_code", domainErrors.CodeOf(err)),
		zap.Error(err))
	return c.JSON(domainErrors.ToHTTPStatus(err), echo.Map{
		"error": err.Error(),
	})
}
