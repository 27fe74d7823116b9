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

// EquipmentHandler serves the marketplace CRUD endpoints.
type EquipmentHandler struct {
	Handler
	equipment *service.EquipmentService
}

func NewEquipmentHandler(s *server.Server, equipment *service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{
		Handler:   NewHandler(s),
		equipment: equipment,
	}
}

type ListEquipmentRequest struct {
	Search    string   `query:"search"`
	Category  string   `query:"category" validate:"omitempty,oneof=all CAMERA LENS LIGHTING BACKDROP PROPS WARDROBE ACCESSORIES"`
	Condition string   `query:"condition" validate:"omitempty,oneof=all NEW LIKE_NEW GOOD FAIR WORN"`
	MinPrice  *float64 `query:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice  *float64 `query:"maxPrice" validate:"omitempty,gte=0"`
	Page      int      `query:"page"`
	Limit     int      `query:"limit"`
}

func (r *ListEquipmentRequest) Validate() error { return validate.Struct(r) }

type EquipmentIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *EquipmentIDRequest) Validate() error { return validate.Struct(r) }

type CreateEquipmentRequest struct {
	Title          string   `json:"title" validate:"required,min=3,max=200"`
	Description    string   `json:"description" validate:"required"`
	Category       string   `json:"category" validate:"required,oneof=CAMERA LENS LIGHTING BACKDROP PROPS WARDROBE ACCESSORIES"`
	Brand          *string  `json:"brand"`
	Model          *string  `json:"model"`
	Condition      string   `json:"condition" validate:"required,oneof=NEW LIKE_NEW GOOD FAIR WORN"`
	Price          float64  `json:"price" validate:"required,gt=0"`
	Images         []string `json:"images" validate:"omitempty,dive,url"`
	Specifications *string  `json:"specifications"`
	City           *string  `json:"city"`
	State          *string  `json:"state"`
}

func (r *CreateEquipmentRequest) Validate() error { return validate.Struct(r) }

type UpdateEquipmentRequest struct {
	ID             string   `param:"id" validate:"required,uuid"`
	Title          *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description    *string  `json:"description"`
	Category       *string  `json:"category" validate:"omitempty,oneof=CAMERA LENS LIGHTING BACKDROP PROPS WARDROBE ACCESSORIES"`
	Brand          *string  `json:"brand"`
	Model          *string  `json:"model"`
	Condition      *string  `json:"condition" validate:"omitempty,oneof=NEW LIKE_NEW GOOD FAIR WORN"`
	Price          *float64 `json:"price" validate:"omitempty,gt=0"`
	Images         []string `json:"images" validate:"omitempty,dive,url"`
	Specifications *string  `json:"specifications"`
	IsActive       *bool    `json:"isActive"`
	IsSold         *bool    `json:"isSold"`
	City           *string  `json:"city"`
	State          *string  `json:"state"`
}

func (r *UpdateEquipmentRequest) Validate() error { return validate.Struct(r) }

// EquipmentListResponse is the list payload: page of items plus the
// pagination window.
type EquipmentListResponse struct {
	Items      []model.EquipmentListing `json:"items"`
	Pagination model.Pagination         `json:"pagination"`
}

// List serves GET /api/marketplace.
func (h *EquipmentHandler) List(c echo.Context, req *ListEquipmentRequest) (*EquipmentListResponse, error) {
	items, pagination, err := h.equipment.List(c.Request().Context(), repository.EquipmentFilter{
		Search:     req.Search,
		Category:   req.Category,
		Condition:  req.Condition,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		ListParams: repository.ListParams{Page: req.Page, Limit: req.Limit},
	})
	if err != nil {
		return nil, err
	}

	return &EquipmentListResponse{Items: items, Pagination: pagination}, nil
}

// Get serves GET /api/marketplace/:id.
func (h *EquipmentHandler) Get(c echo.Context, req *EquipmentIDRequest) (*model.EquipmentListing, error) {
	return h.equipment.Get(c.Request().Context(), req.ID)
}

// Create serves POST /api/marketplace. The seller is always the verified
// caller.
func (h *EquipmentHandler) Create(c echo.Context, req *CreateEquipmentRequest) (*model.EquipmentListing, error) {
	sellerID := middleware.GetUserID(c)
	if sellerID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	return h.equipment.Create(c.Request().Context(), &model.EquipmentListing{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Brand:          req.Brand,
		Model:          req.Model,
		Condition:      req.Condition,
		Price:          req.Price,
		Images:         emptyIfNil(req.Images),
		Specifications: req.Specifications,
		City:           req.City,
		State:          req.State,
		SellerID:       sellerID,
	})
}

// Update serves PUT /api/marketplace/:id.
func (h *EquipmentHandler) Update(c echo.Context, req *UpdateEquipmentRequest) (*model.EquipmentListing, error) {
	callerID := middleware.GetUserID(c)
	if callerID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	return h.equipment.Update(c.Request().Context(), callerID, req.ID, repository.EquipmentPatch{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Brand:          req.Brand,
		Model:          req.Model,
		Condition:      req.Condition,
		Price:          req.Price,
		Images:         req.Images,
		Specifications: req.Specifications,
		IsActive:       req.IsActive,
		IsSold:         req.IsSold,
		City:           req.City,
		State:          req.State,
	})
}

// Delete serves DELETE /api/marketplace/:id.
func (h *EquipmentHandler) Delete(c echo.Context, req *EquipmentIDRequest) (*SuccessResponse, error) {
	callerID := middleware.GetUserID(c)
	if callerID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	if err := h.equipment.Delete(c.Request().Context(), callerID, req.ID); err != nil {
		return nil, err
	}

	return &SuccessResponse{Success: true}, nil
}
