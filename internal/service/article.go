package service

import (
	"context"
	"time"

	"github.com/shutterspot/api/internal/errs"
	"github.com/shutterspot/api/internal/model"
	"github.com/shutterspot/api/internal/repository"
)

// ArticleService owns business logic around magazine articles.
type ArticleService struct {
	repo *repository.ArticleRepository
}

func NewArticleService(repo *repository.ArticleRepository) *ArticleService {
	return &ArticleService{repo: repo}
}

// List returns a page of active articles plus its pagination window.
func (s *ArticleService) List(ctx context.Context, filter repository.ArticleFilter) ([]model.Article, model.Pagination, error) {
	filter.Category = normalizeEnumFilter(filter.Category)
	filter.ListParams = filter.ListParams.Normalized()

	articles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, model.Pagination{}, err
	}

	return articles, model.NewPagination(filter.Page, filter.Limit, total), nil
}

// Get fetches a single active article.
func (s *ArticleService) Get(ctx context.Context, id string) (*model.Article, error) {
	return s.repo.GetByID(ctx, id)
}

// Create persists an article authored by the caller. Published articles
// get their timestamp stamped server-side.
func (s *ArticleService) Create(ctx context.Context, a *model.Article) (*model.Article, error) {
	if a.IsPublished && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}
	return s.repo.Create(ctx, a)
}

// Update applies a partial update; only the author may modify an
// article. The ownership read skips the active filter so a deactivated
// article can still be edited back to active.
func (s *ArticleService) Update(ctx context.Context, callerID, id string, patch repository.ArticlePatch) (*model.Article, error) {
	existing, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.AuthorID != callerID {
		return nil, errs.NewForbiddenError("You do not own this article", false)
	}

	if patch.IsPublished != nil && *patch.IsPublished && existing.PublishedAt == nil && patch.PublishedAt == nil {
		now := time.Now()
		patch.PublishedAt = &now
	}

	return s.repo.Update(ctx, id, patch)
}

// Delete removes an article; only the author may delete it.
func (s *ArticleService) Delete(ctx context.Context, callerID, id string) error {
	existing, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}

	if existing.AuthorID != callerID {
		return errs.NewForbiddenError("You do not own this article", false)
	}

	return s.repo.Delete(ctx, id)
}
