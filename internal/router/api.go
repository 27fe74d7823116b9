package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shutterspot/api/internal/handler"
	"github.com/shutterspot/api/internal/middleware"
)

// Rate limit window for credential endpoints: 10 attempts per minute
// per IP.
const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

// registerAPIRoutes maps the /api surface. Listing and read endpoints
// are public; every mutation requires a verified caller.
func registerAPIRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", handler.Handle(h.Auth.Handler, h.Auth.Register, http.StatusCreated), m.RateLimit.Limit(authRateLimit, authRateWindow))
	auth.POST("/login", handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK), m.RateLimit.Limit(authRateLimit, authRateWindow))
	auth.GET("/me", handler.Handle(h.Auth.Handler, h.Auth.Me, http.StatusOK), m.Auth.RequireAuth)
	auth.POST("/logout", handler.Handle(h.Auth.Handler, h.Auth.Logout, http.StatusOK))

	locations := api.Group("/locations")
	locations.GET("", handler.Handle(h.Locations.Handler, h.Locations.List, http.StatusOK))
	locations.GET("/:id", handler.Handle(h.Locations.Handler, h.Locations.Get, http.StatusOK))
	locations.POST("", handler.Handle(h.Locations.Handler, h.Locations.Create, http.StatusCreated), m.Auth.RequireAuth)
	locations.PUT("/:id", handler.Handle(h.Locations.Handler, h.Locations.Update, http.StatusOK), m.Auth.RequireAuth)
	locations.DELETE("/:id", handler.Handle(h.Locations.Handler, h.Locations.Delete, http.StatusOK), m.Auth.RequireAuth)

	marketplace := api.Group("/marketplace")
	marketplace.GET("", handler.Handle(h.Equipment.Handler, h.Equipment.List, http.StatusOK))
	marketplace.GET("/:id", handler.Handle(h.Equipment.Handler, h.Equipment.Get, http.StatusOK))
	marketplace.POST("", handler.Handle(h.Equipment.Handler, h.Equipment.Create, http.StatusCreated), m.Auth.RequireAuth)
	marketplace.PUT("/:id", handler.Handle(h.Equipment.Handler, h.Equipment.Update, http.StatusOK), m.Auth.RequireAuth)
	marketplace.DELETE("/:id", handler.Handle(h.Equipment.Handler, h.Equipment.Delete, http.StatusOK), m.Auth.RequireAuth)

	challenges := api.Group("/challenges")
	challenges.GET("", handler.Handle(h.Challenges.Handler, h.Challenges.List, http.StatusOK))
	challenges.GET("/:id", handler.Handle(h.Challenges.Handler, h.Challenges.Get, http.StatusOK))
	challenges.POST("", handler.Handle(h.Challenges.Handler, h.Challenges.Create, http.StatusCreated), m.Auth.RequireAuth)
	challenges.PUT("/:id", handler.Handle(h.Challenges.Handler, h.Challenges.Update, http.StatusOK), m.Auth.RequireAuth)
	challenges.DELETE("/:id", handler.Handle(h.Challenges.Handler, h.Challenges.Delete, http.StatusOK), m.Auth.RequireAuth)
	challenges.GET("/:id/submissions", handler.Handle(h.Challenges.Handler, h.Challenges.ListSubmissions, http.StatusOK))
	challenges.POST("/:id/submissions", handler.Handle(h.Challenges.Handler, h.Challenges.Submit, http.StatusCreated), m.Auth.RequireAuth)

	articles := api.Group("/articles")
	articles.GET("", handler.Handle(h.Articles.Handler, h.Articles.List, http.StatusOK))
	articles.GET("/:id", handler.Handle(h.Articles.Handler, h.Articles.Get, http.StatusOK))
	articles.POST("", handler.Handle(h.Articles.Handler, h.Articles.Create, http.StatusCreated), m.Auth.RequireAuth)
	articles.PUT("/:id", handler.Handle(h.Articles.Handler, h.Articles.Update, http.StatusOK), m.Auth.RequireAuth)
	articles.DELETE("/:id", handler.Handle(h.Articles.Handler, h.Articles.Delete, http.StatusOK), m.Auth.RequireAuth)

	bookings := api.Group("/bookings", m.Auth.RequireAuth)
	bookings.GET("", handler.Handle(h.Bookings.Handler, h.Bookings.List, http.StatusOK))
	bookings.POST("", handler.Handle(h.Bookings.Handler, h.Bookings.Create, http.StatusCreated))
	bookings.PUT("/:id/cancel", handler.Handle(h.Bookings.Handler, h.Bookings.Cancel, http.StatusOK))
}
