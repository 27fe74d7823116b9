package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shutterspot/api/internal/errs"
	"github.com/shutterspot/api/internal/middleware"
	"github.com/shutterspot/api/internal/model"
	"github.com/shutterspot/api/internal/repository"
	"github.com/shutterspot/api/internal/server"
	"github.com/shutterspot/api/internal/service"
)

// ChallengeHandler serves the community challenge endpoints.
type ChallengeHandler struct {
	Handler
	challenges *service.ChallengeService
}

func NewChallengeHandler(s *server.Server, challenges *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		Handler:    NewHandler(s),
		challenges: challenges,
	}
}

type ListChallengesRequest struct {
	Category   string `query:"category"`
	Difficulty string `query:"difficulty" validate:"omitempty,oneof=all BEGINNER INTERMEDIATE ADVANCED"`
	Status     string `query:"status" validate:"omitempty,oneof=all UPCOMING ACTIVE ENDED"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
}

func (r *ListChallengesRequest) Validate() error { return validate.Struct(r) }

type ChallengeIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *ChallengeIDRequest) Validate() error { return validate.Struct(r) }

type CreateChallengeRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=200"`
	Description string    `json:"description" validate:"required"`
	Theme       *string   `json:"theme"`
	Rules       []string  `json:"rules"`
	Category    string    `json:"category" validate:"required"`
	Difficulty  string    `json:"difficulty" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required,gtfield=StartDate"`
	PrizePool   *float64  `json:"prizePool" validate:"omitempty,gte=0"`
	CoverImage  *string   `json:"coverImage" validate:"omitempty,url"`
}

func (r *CreateChallengeRequest) Validate() error { return validate.Struct(r) }

type UpdateChallengeRequest struct {
	ID          string     `param:"id" validate:"required,uuid"`
	Title       *string    `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description"`
	Theme       *string    `json:"theme"`
	Rules       []string   `json:"rules"`
	Category    *string    `json:"category"`
	Difficulty  *string    `json:"difficulty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	PrizePool   *float64   `json:"prizePool" validate:"omitempty,gte=0"`
	CoverImage  *string    `json:"coverImage" validate:"omitempty,url"`
	IsActive    *bool      `json:"isActive"`
}

func (r *UpdateChallengeRequest) Validate() error { return validate.Struct(r) }

type SubmitEntryRequest struct {
	ID       string  `param:"id" validate:"required,uuid"`
	ImageURL string  `json:"imageUrl" validate:"required,url"`
	Caption  *string `json:"caption" validate:"omitempty,max=500"`
}

func (r *SubmitEntryRequest) Validate() error { return validate.Struct(r) }

// ChallengeListResponse is the list payload: page of challenges plus the
// pagination window.
type ChallengeListResponse struct {
	Challenges []model.Challenge `json:"challenges"`
	Pagination model.Pagination  `json:"pagination"`
}

// SubmissionsResponse carries a challenge's entries, most voted first.
type SubmissionsResponse struct {
	Submissions []model.ChallengeSubmission `json:"submissions"`
}

// List serves GET /api/challenges.
func (h *ChallengeHandler) List(c echo.Context, req *ListChallengesRequest) (*ChallengeListResponse, error) {
	challenges, pagination, err := h.challenges.List(c.Request().Context(), repository.ChallengeFilter{
		Category:   req.Category,
		Difficulty: req.Difficulty,
		Status:     req.Status,
		ListParams: repository.ListParams{Page: req.Page, Limit: req.Limit},
	})
	if err != nil {
		return nil, err
	}

	return &ChallengeListResponse{Challenges: challenges, Pagination: pagination}, nil
}

// Get serves GET /api/challenges/:id.
func (h *ChallengeHandler) Get(c echo.Context, req *ChallengeIDRequest) (*model.Challenge, error) {
	return h.challenges.Get(c.Request().Context(), req.ID)
}

// Create serves POST /api/challenges. The creator is always the verified
// caller.
func (h *ChallengeHandler) Create(c echo.Context, req *CreateChallengeRequest) (*model.Challenge, error) {
	creatorID := middleware.GetUserID(c)
	if creatorID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	return h.challenges.Create(c.Request().Context(), &model.Challenge{
		Title:       req.Title,
		Description: req.Description,
		Theme:       req.Theme,
		Rules:       emptyIfNil(req.Rules),
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		PrizePool:   req.PrizePool,
		CoverImage:  req.CoverImage,
		CreatorID:   creatorID,
	})
}

// Update serves PUT /api/challenges/:id.
func (h *ChallengeHandler) Update(c echo.Context, req *UpdateChallengeRequest) (*model.Challenge, error) {
	callerID := middleware.GetUserID(c)
	if callerID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	return h.challenges.Update(c.Request().Context(), callerID, req.ID, repository.ChallengePatch{
		Title:       req.Title,
		Description: req.Description,
		Theme:       req.Theme,
		Rules:       req.Rules,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		PrizePool:   req.PrizePool,
		CoverImage:  req.CoverImage,
		IsActive:    req.IsActive,
	})
}

// Delete serves DELETE /api/challenges/:id.
func (h *ChallengeHandler) Delete(c echo.Context, req *ChallengeIDRequest) (*SuccessResponse, error) {
	callerID := middleware.GetUserID(c)
	if callerID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	if err := h.challenges.Delete(c.Request().Context(), callerID, req.ID); err != nil {
		return nil, err
	}

	return &SuccessResponse{Success: true}, nil
}

// ListSubmissions serves GET /api/challenges/:id/submissions.
func (h *ChallengeHandler) ListSubmissions(c echo.Context, req *ChallengeIDRequest) (*SubmissionsResponse, error) {
	submissions, err := h.challenges.ListSubmissions(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}

	return &SubmissionsResponse{Submissions: submissions}, nil
}

// Submit serves POST /api/challenges/:id/submissions.
func (h *ChallengeHandler) Submit(c echo.Context, req *SubmitEntryRequest) (*model.ChallengeSubmission, error) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	return h.challenges.Submit(c.Request().Context(), req.ID, userID, req.ImageURL, req.Caption)
}
