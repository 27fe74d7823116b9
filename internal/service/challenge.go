package service

import (
	"context"
	"time"

	"github.com/shutterspot/api/internal/errs"
	"github.com/shutterspot/api/internal/model"
	"github.com/shutterspot/api/internal/repository"
)

// ChallengeService owns business logic around community challenges.
type ChallengeService struct {
	repo *repository.ChallengeRepository
}

func NewChallengeService(repo *repository.ChallengeRepository) *ChallengeService {
	return &ChallengeService{repo: repo}
}

// List returns a page of active challenges plus its pagination window.
func (s *ChallengeService) List(ctx context.Context, filter repository.ChallengeFilter) ([]model.Challenge, model.Pagination, error) {
	filter.Category = normalizeEnumFilter(filter.Category)
	filter.Difficulty = normalizeEnumFilter(filter.Difficulty)
	filter.Status = normalizeEnumFilter(filter.Status)
	filter.ListParams = filter.ListParams.Normalized()

	challenges, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, model.Pagination{}, err
	}

	return challenges, model.NewPagination(filter.Page, filter.Limit, total), nil
}

// Get fetches a single active challenge.
func (s *ChallengeService) Get(ctx context.Context, id string) (*model.Challenge, error) {
	return s.repo.GetByID(ctx, id)
}

// Create persists a challenge created by the caller. The stored status
// is derived from the start/end dates, never taken from the request.
func (s *ChallengeService) Create(ctx context.Context, c *model.Challenge) (*model.Challenge, error) {
	c.Status = c.StatusForTime(time.Now())
	return s.repo.Create(ctx, c)
}

// Update applies a partial update; only the creator may modify a
// challenge. When the dates move, the status is re-derived. The
// ownership read skips the active filter so a deactivated challenge
// can still be edited back to active.
func (s *ChallengeService) Update(ctx context.Context, callerID, id string, patch repository.ChallengePatch) (*model.Challenge, error) {
	existing, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.CreatorID != callerID {
		return nil, errs.NewForbiddenError("You do not own this challenge", false)
	}

	if patch.StartDate != nil || patch.EndDate != nil {
		shadow := *existing
		if patch.StartDate != nil {
			shadow.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			shadow.EndDate = *patch.EndDate
		}
		status := shadow.StatusForTime(time.Now())
		patch.Status = &status
	}

	return s.repo.Update(ctx, id, patch)
}

// Delete removes a challenge; only the creator may delete it.
func (s *ChallengeService) Delete(ctx context.Context, callerID, id string) error {
	existing, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}

	if existing.CreatorID != callerID {
		return errs.NewForbiddenError("You do not own this challenge", false)
	}

	return s.repo.Delete(ctx, id)
}

// ListSubmissions returns a challenge's entries, most voted first. The
// challenge must exist and be active.
func (s *ChallengeService) ListSubmissions(ctx context.Context, challengeID string) ([]model.ChallengeSubmission, error) {
	if _, err := s.repo.GetByID(ctx, challengeID); err != nil {
		return nil, err
	}
	return s.repo.ListSubmissions(ctx, challengeID)
}

// Submit enters the caller into a challenge. Entries are only accepted
// while the challenge is running.
func (s *ChallengeService) Submit(ctx context.Context, challengeID, userID, imageURL string, caption *string) (*model.ChallengeSubmission, error) {
	challenge, err := s.repo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	if challenge.StatusForTime(time.Now()) != model.ChallengeStatusActive {
		return nil, errs.NewBadRequestError("Challenge is not accepting submissions", false, nil, nil)
	}

	return s.repo.CreateSubmission(ctx, challengeID, userID, imageURL, caption)
}
