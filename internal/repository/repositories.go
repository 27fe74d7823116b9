package repository

import (
	"github.com/shutterspot/api/internal/database"
)

// Repositories is a container for all repository instances, wired once
// at startup and injected into services.
type Repositories struct {
	Users      *UserRepository
	Locations  *LocationRepository
	Equipment  *EquipmentRepository
	Challenges *ChallengeRepository
	Articles   *ArticleRepository
	Bookings   *BookingRepository
}

// NewRepositories constructs the repository container on top of the
// shared connection pool.
func NewRepositories(db *database.Database) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Locations:  NewLocationRepository(db),
		Equipment:  NewEquipmentRepository(db),
		Challenges: NewChallengeRepository(db),
		Articles:   NewArticleRepository(db),
		Bookings:   NewBookingRepository(db),
	}
}
