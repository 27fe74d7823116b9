package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/shutterspot/api/internal/errs"
	"github.com/shutterspot/api/internal/middleware"
	"github.com/shutterspot/api/internal/model"
	"github.com/shutterspot/api/internal/repository"
	"github.com/shutterspot/api/internal/server"
	"github.com/shutterspot/api/internal/service"
)

// LocationHandler serves the bookable location CRUD endpoints.
type LocationHandler struct {
	Handler
	locations *service.LocationService
}

func NewLocationHandler(s *server.Server, locations *service.LocationService) *LocationHandler {
	return &LocationHandler{
		Handler:   NewHandler(s),
		locations: locations,
	}
}

type ListLocationsRequest struct {
	Search   string   `query:"search"`
	Type     string   `query:"type" validate:"omitempty,oneof=all HOME_STUDIO COMMERCIAL_STUDIO OUTDOOR_SPOT UNIQUE_SPACE"`
	Vibe     string   `query:"vibe" validate:"omitempty,oneof=all SOFT_LUXE WITCHY MODERN VINTAGE MINIMALIST RUSTIC URBAN NATURAL"`
	City     string   `query:"city"`
	MinPrice *float64 `query:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice *float64 `query:"maxPrice" validate:"omitempty,gte=0"`
	Page     int      `query:"page"`
	Limit    int      `query:"limit"`
}

func (r *ListLocationsRequest) Validate() error { return validate.Struct(r) }

type LocationIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *LocationIDRequest) Validate() error { return validate.Struct(r) }

type CreateLocationRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"required"`
	Type        string   `json:"type" validate:"required,oneof=HOME_STUDIO COMMERCIAL_STUDIO OUTDOOR_SPOT UNIQUE_SPACE"`
	Vibe        string   `json:"vibe" validate:"required,oneof=SOFT_LUXE WITCHY MODERN VINTAGE MINIMALIST RUSTIC URBAN NATURAL"`
	Address     string   `json:"address" validate:"required"`
	City        string   `json:"city" validate:"required"`
	State       *string  `json:"state"`
	Country     *string  `json:"country"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	HourlyRate  float64  `json:"hourlyRate" validate:"required,gt=0"`
	DailyRate   *float64 `json:"dailyRate" validate:"omitempty,gt=0"`
	MinBooking  int      `json:"minBooking" validate:"omitempty,gte=1"`
	MaxBooking  int      `json:"maxBooking" validate:"omitempty,gte=1"`
	Amenities   []string `json:"amenities"`
	Lighting    []string `json:"lighting"`
	Access      *string  `json:"access"`
	Parking     bool     `json:"parking"`
	Wifi        bool     `json:"wifi"`
	Restroom    bool     `json:"restroom"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	CoverImage  *string  `json:"coverImage" validate:"omitempty,url"`
}

func (r *CreateLocationRequest) Validate() error { return validate.Struct(r) }

type UpdateLocationRequest struct {
	ID          string   `param:"id" validate:"required,uuid"`
	Title       *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string  `json:"description"`
	Type        *string  `json:"type" validate:"omitempty,oneof=HOME_STUDIO COMMERCIAL_STUDIO OUTDOOR_SPOT UNIQUE_SPACE"`
	Vibe        *string  `json:"vibe" validate:"omitempty,oneof=SOFT_LUXE WITCHY MODERN VINTAGE MINIMALIST RUSTIC URBAN NATURAL"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	State       *string  `json:"state"`
	Country     *string  `json:"country"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	HourlyRate  *float64 `json:"hourlyRate" validate:"omitempty,gt=0"`
	DailyRate   *float64 `json:"dailyRate" validate:"omitempty,gt=0"`
	MinBooking  *int     `json:"minBooking" validate:"omitempty,gte=1"`
	MaxBooking  *int     `json:"maxBooking" validate:"omitempty,gte=1"`
	Amenities   []string `json:"amenities"`
	Lighting    []string `json:"lighting"`
	Access      *string  `json:"access"`
	Parking     *bool    `json:"parking"`
	Wifi        *bool    `json:"wifi"`
	Restroom    *bool    `json:"restroom"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	CoverImage  *string  `json:"coverImage" validate:"omitempty,url"`
	IsActive    *bool    `json:"isActive"`
}

func (r *UpdateLocationRequest) Validate() error { return validate.Struct(r) }

// LocationListResponse is the list payload: page of locations plus the
// pagination window.
type LocationListResponse struct {
	Locations  []model.Location `json:"locations"`
	Pagination model.Pagination `json:"pagination"`
}

// List serves GET /api/locations.
func (h *LocationHandler) List(c echo.Context, req *ListLocationsRequest) (*LocationListResponse, error) {
	locations, pagination, err := h.locations.List(c.Request().Context(), repository.LocationFilter{
		Search:     req.Search,
		Type:       req.Type,
		Vibe:       req.Vibe,
		City:       req.City,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		ListParams: repository.ListParams{Page: req.Page, Limit: req.Limit},
	})
	if err != nil {
		return nil, err
	}

	return &LocationListResponse{Locations: locations, Pagination: pagination}, nil
}

// Get serves GET /api/locations/:id.
func (h *LocationHandler) Get(c echo.Context, req *LocationIDRequest) (*model.Location, error) {
	return h.locations.Get(c.Request().Context(), req.ID)
}

// Create serves POST /api/locations. The owner is always the verified
// caller.
func (h *LocationHandler) Create(c echo.Context, req *CreateLocationRequest) (*model.Location, error) {
	ownerID := middleware.GetUserID(c)
	if ownerID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	minBooking := req.MinBooking
	if minBooking == 0 {
		minBooking = 1
	}
	maxBooking := req.MaxBooking
	if maxBooking == 0 {
		maxBooking = 8
	}

	return h.locations.Create(c.Request().Context(), &model.Location{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Vibe:        req.Vibe,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		HourlyRate:  req.HourlyRate,
		DailyRate:   req.DailyRate,
		MinBooking:  minBooking,
		MaxBooking:  maxBooking,
		Amenities:   emptyIfNil(req.Amenities),
		Lighting:    emptyIfNil(req.Lighting),
		Access:      req.Access,
		Parking:     req.Parking,
		Wifi:        req.Wifi,
		Restroom:    req.Restroom,
		Images:      emptyIfNil(req.Images),
		CoverImage:  req.CoverImage,
		OwnerID:     ownerID,
	})
}

// Update serves PUT /api/locations/:id.
func (h *LocationHandler) Update(c echo.Context, req *UpdateLocationRequest) (*model.Location, error) {
	callerID := middleware.GetUserID(c)
	if callerID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	return h.locations.Update(c.Request().Context(), callerID, req.ID, repository.LocationPatch{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Vibe:        req.Vibe,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		HourlyRate:  req.HourlyRate,
		DailyRate:   req.DailyRate,
		MinBooking:  req.MinBooking,
		MaxBooking:  req.MaxBooking,
		Amenities:   req.Amenities,
		Lighting:    req.Lighting,
		Access:      req.Access,
		Parking:     req.Parking,
		Wifi:        req.Wifi,
		Restroom:    req.Restroom,
		Images:      req.Images,
		CoverImage:  req.CoverImage,
		IsActive:    req.IsActive,
	})
}

// Delete serves DELETE /api/locations/:id.
func (h *LocationHandler) Delete(c echo.Context, req *LocationIDRequest) (*SuccessResponse, error) {
	callerID := middleware.GetUserID(c)
	if callerID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	if err := h.locations.Delete(c.Request().Context(), callerID, req.ID); err != nil {
		return nil, err
	}

	return &SuccessResponse{Success: true}, nil
}

// emptyIfNil keeps array columns non-null in storage.
func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
