package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cosmicchronic/marketplace/docs"
	"github.com/cosmicchronic/marketplace/internal/api/handler"
	"github.com/cosmicchronic/marketplace/internal/api/metrics"
	"github.com/cosmicchronic/marketplace/internal/api/middleware"
	"github.com/cosmicchronic/marketplace/internal/core/domain"
	"github.com/cosmicchronic/marketplace/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Marketplace ports.MarketplaceService
	Auth        ports.AuthService
	JWTSecret   string
	Log         zerolog.Logger
	// ReadinessChecks are run by /health/ready, keyed by dependency name.
	ReadinessChecks map[string]func(ctx context.Context) error
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// Each router owns its registry so tests can build several.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	reg.MustRegister(metrics.Collectors()...)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: reg,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	navHandler := handler.NewNavHandler(d.Marketplace)
	adminHandler := handler.NewAdminHandler(d.Marketplace)
	productHandler := handler.NewProductHandler(d.Marketplace)
	chatHandler := handler.NewChatHandler(d.Marketplace)
	dmHandler := handler.NewDirectMessageHandler(d.Marketplace)
	profileHandler := handler.NewProfileHandler(d.Marketplace)
	healthHandler := handler.NewHealthHandler(d.ReadinessChecks)
	authMiddleware := middleware.Auth(d.JWTSecret, d.Marketplace)

	// --- Public routes ---
	e.POST("/v1/auth/login", authHandler.Login)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.POST("/auth/logout", authHandler.Logout)
	v1.GET("/me", authHandler.Me)
	v1.GET("/nav", navHandler.Get)

	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.PATCH("/users/:id/role", adminHandler.UpdateRole)

	v1.GET("/products", productHandler.List)
	v1.POST("/products", productHandler.Create)
	v1.POST("/products/:id/inquiry", productHandler.Inquiry)

	v1.GET("/chat/messages", chatHandler.List)
	v1.POST("/chat/messages", chatHandler.Send)

	v1.GET("/dm/peers", dmHandler.Peers)
	v1.GET("/dm/open", dmHandler.Open)
	v1.GET("/dm/:peer_id", dmHandler.Conversation)
	v1.POST("/dm/:peer_id", dmHandler.Send)

	v1.GET("/profile", profileHandler.Get)
	v1.PUT("/profile", profileHandler.Update)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			switch {
			case v.Status >= 500:
				evt = log.Error().Err(v.Error)
			case v.Error != nil:
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
