package middleware

import (
	"github.com/shutterspot/api/internal/server"
	"github.com/shutterspot/api/internal/service"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups all middleware components used by the HTTP server,
// so routing code has a single place to pull them from.
type Middlewares struct {
	// Global holds middleware applied to every route: CORS, request
	// logging, recovery, secure headers, and the global error handler.
	Global *GlobalMiddlewares

	// Auth verifies bearer tokens and attaches the user to the request.
	Auth *AuthMiddleware

	// ContextEnhancer enriches each request with a request-scoped logger
	// (request_id, method, path, ip, optional user and trace metadata).
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware and helpers to attach custom
	// attributes and notice errors on transactions.
	Tracing *TracingMiddleware

	// RateLimit throttles abuse-prone routes (login, register) per IP.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components from the
// application container. The token service and user resolver are
// injected separately since services and repositories are built after
// the server.
//
// When New Relic is not configured nrApp is nil and tracing degrades
// into a no-op.
func NewMiddlewares(s *server.Server, tokenService *service.TokenService, users UserResolver) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s, tokenService, users),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
