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

// ArticleHandler serves the magazine article endpoints.
type ArticleHandler struct {
	Handler
	articles *service.ArticleService
}

func NewArticleHandler(s *server.Server, articles *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		Handler:  NewHandler(s),
		articles: articles,
	}
}

type ListArticlesRequest struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

func (r *ListArticlesRequest) Validate() error { return validate.Struct(r) }

type ArticleIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *ArticleIDRequest) Validate() error { return validate.Struct(r) }

type CreateArticleRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Content     string   `json:"content" validate:"required"`
	Excerpt     *string  `json:"excerpt" validate:"omitempty,max=500"`
	CoverImage  *string  `json:"coverImage" validate:"omitempty,url"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category" validate:"required"`
	IsPublished *bool    `json:"isPublished"`
}

func (r *CreateArticleRequest) Validate() error { return validate.Struct(r) }

type UpdateArticleRequest struct {
	ID          string   `param:"id" validate:"required,uuid"`
	Title       *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Content     *string  `json:"content"`
	Excerpt     *string  `json:"excerpt" validate:"omitempty,max=500"`
	CoverImage  *string  `json:"coverImage" validate:"omitempty,url"`
	Tags        []string `json:"tags"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"isActive"`
	IsPublished *bool    `json:"isPublished"`
}

func (r *UpdateArticleRequest) Validate() error { return validate.Struct(r) }

// ArticleListResponse is the list payload: page of articles plus the
// pagination window.
type ArticleListResponse struct {
	Articles   []model.Article  `json:"articles"`
	Pagination model.Pagination `json:"pagination"`
}

// List serves GET /api/articles.
func (h *ArticleHandler) List(c echo.Context, req *ListArticlesRequest) (*ArticleListResponse, error) {
	articles, pagination, err := h.articles.List(c.Request().Context(), repository.ArticleFilter{
		Search:     req.Search,
		Category:   req.Category,
		ListParams: repository.ListParams{Page: req.Page, Limit: req.Limit},
	})
	if err != nil {
		return nil, err
	}

	return &ArticleListResponse{Articles: articles, Pagination: pagination}, nil
}

// Get serves GET /api/articles/:id.
func (h *ArticleHandler) Get(c echo.Context, req *ArticleIDRequest) (*model.Article, error) {
	return h.articles.Get(c.Request().Context(), req.ID)
}

// Create serves POST /api/articles. The author is always the verified
// caller.
func (h *ArticleHandler) Create(c echo.Context, req *CreateArticleRequest) (*model.Article, error) {
	authorID := middleware.GetUserID(c)
	if authorID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	isPublished := true
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	return h.articles.Create(c.Request().Context(), &model.Article{
		Title:       req.Title,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		CoverImage:  req.CoverImage,
		Tags:        emptyIfNil(req.Tags),
		Category:    req.Category,
		IsPublished: isPublished,
		AuthorID:    authorID,
	})
}

// Update serves PUT /api/articles/:id.
func (h *ArticleHandler) Update(c echo.Context, req *UpdateArticleRequest) (*model.Article, error) {
	callerID := middleware.GetUserID(c)
	if callerID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	return h.articles.Update(c.Request().Context(), callerID, req.ID, repository.ArticlePatch{
		Title:       req.Title,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		CoverImage:  req.CoverImage,
		Tags:        req.Tags,
		Category:    req.Category,
		IsActive:    req.IsActive,
		IsPublished: req.IsPublished,
	})
}

// Delete serves DELETE /api/articles/:id.
func (h *ArticleHandler) Delete(c echo.Context, req *ArticleIDRequest) (*SuccessResponse, error) {
	callerID := middleware.GetUserID(c)
	if callerID == "" {
		return nil, errs.NewUnauthorizedError("Invalid credentials", false)
	}

	if err := h.articles.Delete(c.Request().Context(), callerID, req.ID); err != nil {
		return nil, err
	}

	return &SuccessResponse{Success: true}, nil
}
