package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/helpdesk-hq/helpdesk-api/internal/api/handler"
	"github.com/helpdesk-hq/helpdesk-api/internal/api/middleware"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/ports"
	"github.com/helpdesk-hq/helpdesk-api/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router wires into handlers.
type Dependencies struct {
	Agents       ports.AgentService
	Tickets      ports.TicketService
	Sessions     ports.SessionVerifier
	Health       map[string]handlers.Pinger
	CookieSecure bool
	Logger       zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "helpdesk",
		Subsystem:  "http",
		Registerer: deps.Registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(deps.Health).Readiness)

	// --- Agent surface ---
	sessionHandler := handler.NewSessionHandler(deps.Agents, deps.CookieSecure)
	memberHandler := handler.NewMemberHandler(deps.Agents)
	agentTicketHandler := handler.NewAgentTicketHandler(deps.Tickets)
	session := middleware.Session(deps.Sessions, deps.Agents)

	agent := e.Group("/agent")
	agent.POST("/auth/signin", sessionHandler.SignIn)
	agent.POST("/auth/signout", sessionHandler.SignOut)

	agentTickets := agent.Group("/tickets", session)
	agentTickets.GET("", agentTicketHandler.List)
	agentTickets.GET("/:id", agentTicketHandler.Get)
	agentTickets.PUT("/:id", agentTicketHandler.Reply)
	agentTickets.PATCH("/:id", agentTicketHandler.ChangeStatus)

	members := agent.Group("/members", session, middleware.RequireRoles(domain.AdminOnly...))
	members.GET("", memberHandler.List)
	members.PUT("", memberHandler.Create)
	members.GET("/:member_id", memberHandler.Get)
	members.PATCH("/:member_id", memberHandler.Update)
	members.DELETE("/:member_id", memberHandler.Delete)

	// --- User surface ---
	ticketHandler := handler.NewTicketHandler(deps.Tickets)

	e.GET("/tickets", ticketHandler.List)
	e.PUT("/tickets", ticketHandler.Create)
	e.GET("/tickets/:id", ticketHandler.Get)
	e.PUT("/tickets/:id", ticketHandler.AppendMessage)
	e.POST("/tickets/:id/rate", ticketHandler.Rate)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
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
