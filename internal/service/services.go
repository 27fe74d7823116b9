package service

import (
	"github.com/shutterspot/api/internal/lib/job"
	"github.com/shutterspot/api/internal/repository"
	"github.com/shutterspot/api/internal/server"
)

// Services is the container for all business-logic services.
type Services struct {
	Token      *TokenService
	Auth       *AuthService
	Locations  *LocationService
	Equipment  *EquipmentService
	Challenges *ChallengeService
	Articles   *ArticleService
	Bookings   *BookingService
	Job        *job.JobService
}

// NewServices wires all services from the application container and
// repositories.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	tokenService, err := NewTokenService(s.Config)
	if err != nil {
		return nil, err
	}

	return &Services{
		Token:      tokenService,
		Auth:       NewAuthService(s.Logger, repos.Users, tokenService, s.Job.Client),
		Locations:  NewLocationService(repos.Locations),
		Equipment:  NewEquipmentService(repos.Equipment),
		Challenges: NewChallengeService(repos.Challenges),
		Articles:   NewArticleService(repos.Articles),
		Bookings:   NewBookingService(s.Logger, repos.Bookings, repos.Locations, repos.Users, s.Job.Client),
		Job:        s.Job,
	}, nil
}

// normalizeEnumFilter maps the client-side "no filter" sentinels onto an
// absent filter. Enum-valued selects send the literal "all" when nothing
// is chosen; substring filters only ever omit the param, so they are not
// routed through here.
func normalizeEnumFilter(value string) string {
	if value == "all" {
		return ""
	}
	return value
}
