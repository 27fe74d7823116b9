package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shutterspot/api/internal/errs"
	"github.com/shutterspot/api/internal/lib/job"
	"github.com/shutterspot/api/internal/model"
	"github.com/shutterspot/api/internal/repository"
)

// BookingService owns business logic around location bookings.
type BookingService struct {
	logger    *zerolog.Logger
	repo      *repository.BookingRepository
	locations *repository.LocationRepository
	users     *repository.UserRepository
	jobs      TaskEnqueuer
}

func NewBookingService(logger *zerolog.Logger, repo *repository.BookingRepository, locations *repository.LocationRepository, users *repository.UserRepository, jobs TaskEnqueuer) *BookingService {
	return &BookingService{
		logger:    logger,
		repo:      repo,
		locations: locations,
		users:     users,
		jobs:      jobs,
	}
}

// ListMine returns the caller's bookings, newest first.
func (s *BookingService) ListMine(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create books a location for the caller. Hours and amount are computed
// server-side from the location's hourly rate; the request never sets
// them. The booking starts in PENDING and a confirmation email is
// enqueued.
func (s *BookingService) Create(ctx context.Context, userID, locationID string, start, end time.Time, purpose, notes *string) (*model.Booking, error) {
	location, err := s.locations.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if !end.After(start) {
		return nil, errs.NewBadRequestError("End time must be after start time", false, nil, nil)
	}

	hours := end.Sub(start).Hours()
	if hours < float64(location.MinBooking) || hours > float64(location.MaxBooking) {
		return nil, errs.NewBadRequestError("Booking duration is outside the location's allowed range", false, nil, nil)
	}

	booking, err := s.repo.Create(ctx, &model.Booking{
		LocationID:  locationID,
		UserID:      userID,
		StartTime:   start,
		EndTime:     end,
		TotalHours:  hours,
		TotalAmount: hours * location.HourlyRate,
		Status:      model.BookingStatusPending,
		Purpose:     purpose,
		Notes:       notes,
	})
	if err != nil {
		return nil, err
	}

	booking.Location = location
	s.enqueueConfirmationEmail(ctx, userID, location.Title, booking)

	return booking, nil
}

// Cancel moves one of the caller's bookings to CANCELLED. Completed and
// already-cancelled bookings stay as they are.
func (s *BookingService) Cancel(ctx context.Context, callerID, id string) (*model.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != callerID {
		return nil, errs.NewForbiddenError("You do not own this booking", false)
	}

	if booking.Status != model.BookingStatusPending && booking.Status != model.BookingStatusConfirmed {
		return nil, errs.NewBadRequestError("Booking can no longer be cancelled", false, nil, nil)
	}

	return s.repo.UpdateStatus(ctx, id, model.BookingStatusCancelled)
}

// enqueueConfirmationEmail hands the confirmation email to the job
// queue. Booking creation does not fail when the queue is down.
func (s *BookingService) enqueueConfirmationEmail(ctx context.Context, userID, locationTitle string, booking *model.Booking) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load user for booking email")
		return
	}

	task, err := job.NewBookingConfirmationTask(user.Email, locationTitle, booking.StartTime, booking.TotalAmount)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to build booking confirmation task")
		return
	}

	if _, err := s.jobs.Enqueue(task); err != nil {
		s.logger.Error().
			Err(err).
			Str("booking_id", booking.ID).
			Msg("failed to enqueue booking confirmation email")
	}
}
