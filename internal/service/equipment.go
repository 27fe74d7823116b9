package service

import (
	"context"

	"github.com/shutterspot/api/internal/errs"
	"github.com/shutterspot/api/internal/model"
	"github.com/shutterspot/api/internal/repository"
)

// EquipmentService owns business logic around marketplace listings.
type EquipmentService struct {
	repo *repository.EquipmentRepository
}

func NewEquipmentService(repo *repository.EquipmentRepository) *EquipmentService {
	return &EquipmentService{repo: repo}
}

// List returns a page of active listings plus its pagination window.
func (s *EquipmentService) List(ctx context.Context, filter repository.EquipmentFilter) ([]model.EquipmentListing, model.Pagination, error) {
	filter.Category = normalizeEnumFilter(filter.Category)
	filter.Condition = normalizeEnumFilter(filter.Condition)
	filter.ListParams = filter.ListParams.Normalized()

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, model.Pagination{}, err
	}

	return items, model.NewPagination(filter.Page, filter.Limit, total), nil
}

// Get fetches a single active listing.
func (s *EquipmentService) Get(ctx context.Context, id string) (*model.EquipmentListing, error) {
	return s.repo.GetByID(ctx, id)
}

// Create persists a listing sold by the caller.
func (s *EquipmentService) Create(ctx context.Context, item *model.EquipmentListing) (*model.EquipmentListing, error) {
	return s.repo.Create(ctx, item)
}

// Update applies a partial update; only the seller may modify a
// listing. The ownership read skips the active filter so a deactivated
// listing can still be edited back to active.
func (s *EquipmentService) Update(ctx context.Context, callerID, id string, patch repository.EquipmentPatch) (*model.EquipmentListing, error) {
	existing, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.SellerID != callerID {
		return nil, errs.NewForbiddenError("You do not own this listing", false)
	}

	return s.repo.Update(ctx, id, patch)
}

// Delete removes a listing; only the seller may delete it.
func (s *EquipmentService) Delete(ctx context.Context, callerID, id string) error {
	existing, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}

	if existing.SellerID != callerID {
		return errs.NewForbiddenError("You do not own this listing", false)
	}

	return s.repo.Delete(ctx, id)
}
