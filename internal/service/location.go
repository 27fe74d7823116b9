package service

import (
	"context"

	"github.com/shutterspot/api/internal/errs"
	"github.com/shutterspot/api/internal/model"
	"github.com/shutterspot/api/internal/repository"
)

// LocationService owns business logic around bookable locations.
type LocationService struct {
	repo *repository.LocationRepository
}

func NewLocationService(repo *repository.LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// List returns a page of active locations plus its pagination window.
func (s *LocationService) List(ctx context.Context, filter repository.LocationFilter) ([]model.Location, model.Pagination, error) {
	filter.Type = normalizeEnumFilter(filter.Type)
	filter.Vibe = normalizeEnumFilter(filter.Vibe)
	filter.ListParams = filter.ListParams.Normalized()

	locations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, model.Pagination{}, err
	}

	return locations, model.NewPagination(filter.Page, filter.Limit, total), nil
}

// Get fetches a single active location.
func (s *LocationService) Get(ctx context.Context, id string) (*model.Location, error) {
	return s.repo.GetByID(ctx, id)
}

// Create persists a location owned by the caller.
func (s *LocationService) Create(ctx context.Context, loc *model.Location) (*model.Location, error) {
	return s.repo.Create(ctx, loc)
}

// Update applies a partial update; only the owner may modify a
// location. The ownership read skips the active filter so a
// deactivated location can still be edited back to active.
func (s *LocationService) Update(ctx context.Context, callerID, id string, patch repository.LocationPatch) (*model.Location, error) {
	existing, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.OwnerID != callerID {
		return nil, errs.NewForbiddenError("You do not own this location", false)
	}

	return s.repo.Update(ctx, id, patch)
}

// Delete removes a location; only the owner may delete it.
func (s *LocationService) Delete(ctx context.Context, callerID, id string) error {
	existing, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}

	if existing.OwnerID != callerID {
		return errs.NewForbiddenError("You do not own this location", false)
	}

	return s.repo.Delete(ctx, id)
}
