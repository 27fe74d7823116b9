package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/shutterspot/api/internal/database"
	"github.com/shutterspot/api/internal/model"
)

const articleColumns = `a.id, a.title, a.content, a.excerpt, a.cover_image,
	a.tags, a.category, a.is_active, a.is_published, a.published_at,
	a.author_id, a.created_at, a.updated_at, u.id, u.name, u.avatar`

// ArticleFilter holds the optional list filters for articles.
type ArticleFilter struct {
	Search   string
	Category string
	ListParams
}

func (f ArticleFilter) predicate() *Predicate {
	p := NewPredicate("a.is_active")
	p.SearchOr(f.Search, "a.title", "a.content")
	p.Eq("a.category", f.Category)
	return p
}

// ArticlePatch holds the optional fields of a partial update.
type ArticlePatch struct {
	Title       *string
	Content     *string
	Excerpt     *string
	CoverImage  *string
	Tags        []string
	Category    *string
	IsActive    *bool
	IsPublished *bool
	PublishedAt *time.Time
}

// ArticleRepository reads and writes magazine article rows.
type ArticleRepository struct {
	db *database.Database
}

func NewArticleRepository(db *database.Database) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func scanArticle(row interface{ Scan(...any) error }) (*model.Article, error) {
	var a model.Article
	err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.Excerpt, &a.CoverImage,
		&a.Tags, &a.Category, &a.IsActive, &a.IsPublished, &a.PublishedAt,
		&a.AuthorID, &a.CreatedAt, &a.UpdatedAt,
		&a.Author.ID, &a.Author.Name, &a.Author.Avatar,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns a page of active articles matching the filter plus the
// total match count, newest first.
func (r *ArticleRepository) List(ctx context.Context, filter ArticleFilter) ([]model.Article, int, error) {
	params := filter.ListParams.Normalized()

	p := filter.predicate()
	countArgs := p.Args()
	countSQL := `SELECT count(*) FROM articles a ` + p.Where()

	fetchSQL := `SELECT ` + articleColumns + `
		 FROM articles a
		 JOIN users u ON u.id = a.author_id ` +
		p.Where() +
		` ORDER BY a.created_at DESC LIMIT ` + p.Bind(params.Limit) + ` OFFSET ` + p.Bind(params.Skip())
	fetchArgs := p.Args()

	var (
		total    int
		articles []model.Article
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.db.Pool.QueryRow(gctx, countSQL, countArgs...).Scan(&total)
	})

	g.Go(func() error {
		rows, err := r.db.Pool.Query(gctx, fetchSQL, fetchArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		articles = make([]model.Article, 0, params.Limit)
		for rows.Next() {
			a, err := scanArticle(rows)
			if err != nil {
				return err
			}
			articles = append(articles, *a)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// GetByID fetches an active article with its author.
func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*model.Article, error) {
	return r.getByID(ctx, id, true)
}

// GetForUpdate fetches an article regardless of is_active, for the
// ownership check before a mutation.
func (r *ArticleRepository) GetForUpdate(ctx context.Context, id string) (*model.Article, error) {
	return r.getByID(ctx, id, false)
}

func (r *ArticleRepository) getByID(ctx context.Context, id string, activeOnly bool) (*model.Article, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+articleColumns+`
		 FROM articles a
		 JOIN users u ON u.id = a.author_id `+byIDWhere("a", activeOnly), id)
	return scanArticle(row)
}

// Create inserts an article for authorID and returns the stored row.
func (r *ArticleRepository) Create(ctx context.Context, a *model.Article) (*model.Article, error) {
	var id string
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO articles (title, content, excerpt, cover_image, tags,
			category, is_published, published_at, author_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		a.Title, a.Content, a.Excerpt, a.CoverImage, a.Tags, a.Category,
		a.IsPublished, a.PublishedAt, a.AuthorID,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Update applies a partial update and returns the fresh row.
func (r *ArticleRepository) Update(ctx context.Context, id string, patch ArticlePatch) (*model.Article, error) {
	var set SetClause
	setIfPresent(&set, "title", patch.Title)
	setIfPresent(&set, "content", patch.Content)
	setIfPresent(&set, "excerpt", patch.Excerpt)
	setIfPresent(&set, "cover_image", patch.CoverImage)
	if patch.Tags != nil {
		set.Set("tags", patch.Tags)
	}
	setIfPresent(&set, "category", patch.Category)
	setIfPresent(&set, "is_active", patch.IsActive)
	setIfPresent(&set, "is_published", patch.IsPublished)
	setIfPresent(&set, "published_at", patch.PublishedAt)

	if set.Empty() {
		return r.getByID(ctx, id, false)
	}

	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE articles SET `+set.Assignments()+` WHERE id = `+set.Bind(id),
		set.Args()...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}

	return r.getByID(ctx, id, false)
}

// Delete removes an article.
func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
