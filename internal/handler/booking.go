package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shutterspot/api/internal/errs"
	"github.com/shutterspot/api/internal/middleware"
	"github.com/shutterspot/api/internal/model"
	"github.com/shutterspot/api/internal/server"
	"github.com/shutterspot/api/internal/service"
)

// BookingHandler serves the location booking endpoints.
type BookingHandler struct {
	Handler
	bookings *service.BookingService
}

func NewBookingHandler(s *server.Server, bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{
		Handler:  NewHandler(s),
		bookings: bookings,
	}
}

type CreateBookingRequest struct {
	LocationID string    `json:"locationId" validate:"required,uuid"`
	StartTime  time.Time `json:"startTime" validate:"required"`
	EndTime    time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	Purpose    *string   `json:"purpose" validate:"omitempty,max=500"`
	Notes      *string   `json:"notes" validate:"omitempty,max=2000"`
}

func (r *CreateBookingRequest) Validate() error { return validate.Struct(r) }

type BookingIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *BookingIDRequest) Validate() error { return validate.Struct(r) }

// BookingListResponse carries the caller's bookings, newest first.
type BookingListResponse struct {
	Bookings []model.Booking `json:"bookings"`
}

// List serves GET /api/bookings: only the caller's own bookings.
func (h *BookingHandler) List(c echo.Context, _ *EmptyRequest) (*BookingListResponse, error) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	bookings, err := h.bookings.ListMine(c.Request().Context(), userID)
	if err != nil {
		return nil, err
	}

	return &BookingListResponse{Bookings: bookings}, nil
}

// Create serves POST /api/bookings.
func (h *BookingHandler) Create(c echo.Context, req *CreateBookingRequest) (*model.Booking, error) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	return h.bookings.Create(c.Request().Context(), userID, req.LocationID, req.StartTime, req.EndTime, req.Purpose, req.Notes)
}

// Cancel serves PUT /api/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c echo.Context, req *BookingIDRequest) (*model.Booking, error) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	return h.bookings.Cancel(c.Request().Context(), userID, req.ID)
}
