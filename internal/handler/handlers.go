package handler

import (
	"github.com/shutterspot/api/internal/server"
	"github.com/shutterspot/api/internal/service"
)

// Handlers groups all HTTP handlers so router setup passes one object
// around.
type Handlers struct {
	Health     *HealthHandler
	Auth       *AuthHandler
	Locations  *LocationHandler
	Equipment  *EquipmentHandler
	Challenges *ChallengeHandler
	Articles   *ArticleHandler
	Bookings   *BookingHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		Auth:       NewAuthHandler(s, services.Auth),
		Locations:  NewLocationHandler(s, services.Locations),
		Equipment:  NewEquipmentHandler(s, services.Equipment),
		Challenges: NewChallengeHandler(s, services.Challenges),
		Articles:   NewArticleHandler(s, services.Articles),
		Bookings:   NewBookingHandler(s, services.Bookings),
	}
}

// EmptyRequest is the payload for endpoints that take no parameters.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error { return nil }

// SuccessResponse is the body of destructive operations.
type SuccessResponse struct {
	Success bool `json:"success"`
}
