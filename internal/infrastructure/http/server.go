package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/pamfilico/stripe-customer-service/internal/adapter/handler/http"
	"github.com/pamfilico/stripe-customer-service/internal/config"
	"github.com/pamfilico/stripe-customer-service/internal/usecase"
)

type Server struct {
	config          *config.Config
	logger          *zap.Logger
	echo            *echo.Echo
	customerService *usecase.CustomerService
}

func NewServer(cfg *config.Config, logger *zap.Logger, customerService *usecase.CustomerService) *Server {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config:          cfg,
		logger:          logger,
		echo:            e,
		customerService: customerService,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "customer",
		})
	})

	// Initialize handlers
	customerHandler := handlers.NewCustomerHandler(s.logger, s.customerService)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Publishable key for browser clients
	v1.GET("/config", customerHandler.GetConfig)

	// Customers - RESTful style
	customers := v1.Group("/customers")
	customers.POST("", customerHandler.CreateCustomer)
	customers.GET("", customerHandler.ListCustomers)
	customers.GET("/:id", customerHandler.GetCustomer)
	customers.PUT("/:id", customerHandler.UpdateCustomer)
	customers.DELETE("/:id", customerHandler.DeleteCustomer)
}
