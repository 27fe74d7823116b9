package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/shutterspot/api/internal/database"
	"github.com/shutterspot/api/internal/model"
)

const challengeColumns = `c.id, c.title, c.description, c.theme, c.rules,
	c.category, c.difficulty, c.status, c.start_date, c.end_date,
	c.prize_pool, c.cover_image, c.is_active, c.creator_id, c.created_at,
	c.updated_at, u.id, u.name, u.avatar,
	(SELECT count(*) FROM challenge_submissions s WHERE s.challenge_id = c.id)`

// ChallengeFilter holds the optional list filters for challenges.
type ChallengeFilter struct {
	Category   string
	Difficulty string
	Status     string
	ListParams
}

func (f ChallengeFilter) predicate() *Predicate {
	p := NewPredicate("c.is_active")
	p.Eq("c.category", f.Category)
	p.Eq("c.difficulty", f.Difficulty)
	p.Eq("c.status", f.Status)
	return p
}

// ChallengePatch holds the optional fields of a partial update.
type ChallengePatch struct {
	Title       *string
	Description *string
	Theme       *string
	Rules       []string
	Category    *string
	Difficulty  *string
	Status      *string
	StartDate   *time.Time
	EndDate     *time.Time
	PrizePool   *float64
	CoverImage  *string
	IsActive    *bool
}

// ChallengeRepository reads and writes challenge and submission rows.
type ChallengeRepository struct {
	db *database.Database
}

func NewChallengeRepository(db *database.Database) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

func scanChallenge(row interface{ Scan(...any) error }) (*model.Challenge, error) {
	var c model.Challenge
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.Theme, &c.Rules,
		&c.Category, &c.Difficulty, &c.Status, &c.StartDate, &c.EndDate,
		&c.PrizePool, &c.CoverImage, &c.IsActive, &c.CreatorID, &c.CreatedAt,
		&c.UpdatedAt, &c.Creator.ID, &c.Creator.Name, &c.Creator.Avatar,
		&c.SubmissionCount,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns a page of active challenges matching the filter plus the
// total match count, newest first. Each row carries its creator and
// submission count.
func (r *ChallengeRepository) List(ctx context.Context, filter ChallengeFilter) ([]model.Challenge, int, error) {
	params := filter.ListParams.Normalized()

	p := filter.predicate()
	countArgs := p.Args()
	countSQL := `SELECT count(*) FROM challenges c ` + p.Where()

	fetchSQL := `SELECT ` + challengeColumns + `
		 FROM challenges c
		 JOIN users u ON u.id = c.creator_id ` +
		p.Where() +
		` ORDER BY c.created_at DESC LIMIT ` + p.Bind(params.Limit) + ` OFFSET ` + p.Bind(params.Skip())
	fetchArgs := p.Args()

	var (
		total      int
		challenges []model.Challenge
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

		challenges = make([]model.Challenge, 0, params.Limit)
		for rows.Next() {
			c, err := scanChallenge(rows)
			if err != nil {
				return err
			}
			challenges = append(challenges, *c)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return challenges, total, nil
}

// GetByID fetches an active challenge with its creator and submission
// count.
func (r *ChallengeRepository) GetByID(ctx context.Context, id string) (*model.Challenge, error) {
	return r.getByID(ctx, id, true)
}

// GetForUpdate fetches a challenge regardless of is_active, for the
// ownership check before a mutation.
func (r *ChallengeRepository) GetForUpdate(ctx context.Context, id string) (*model.Challenge, error) {
	return r.getByID(ctx, id, false)
}

func (r *ChallengeRepository) getByID(ctx context.Context, id string, activeOnly bool) (*model.Challenge, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+challengeColumns+`
		 FROM challenges c
		 JOIN users u ON u.id = c.creator_id `+byIDWhere("c", activeOnly), id)
	return scanChallenge(row)
}

// Create inserts a challenge for creatorID with its status derived from
// the start/end dates, and returns the stored row.
func (r *ChallengeRepository) Create(ctx context.Context, c *model.Challenge) (*model.Challenge, error) {
	var id string
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO challenges (title, description, theme, rules, category,
			difficulty, status, start_date, end_date, prize_pool, cover_image,
			creator_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		c.Title, c.Description, c.Theme, c.Rules, c.Category, c.Difficulty,
		c.Status, c.StartDate, c.EndDate, c.PrizePool, c.CoverImage,
		c.CreatorID,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Update applies a partial update and returns the fresh row.
func (r *ChallengeRepository) Update(ctx context.Context, id string, patch ChallengePatch) (*model.Challenge, error) {
	var set SetClause
	setIfPresent(&set, "title", patch.Title)
	setIfPresent(&set, "description", patch.Description)
	setIfPresent(&set, "theme", patch.Theme)
	if patch.Rules != nil {
		set.Set("rules", patch.Rules)
	}
	setIfPresent(&set, "category", patch.Category)
	setIfPresent(&set, "difficulty", patch.Difficulty)
	setIfPresent(&set, "status", patch.Status)
	setIfPresent(&set, "start_date", patch.StartDate)
	setIfPresent(&set, "end_date", patch.EndDate)
	setIfPresent(&set, "prize_pool", patch.PrizePool)
	setIfPresent(&set, "cover_image", patch.CoverImage)
	setIfPresent(&set, "is_active", patch.IsActive)

	if set.Empty() {
		return r.getByID(ctx, id, false)
	}

	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE challenges SET `+set.Assignments()+` WHERE id = `+set.Bind(id),
		set.Args()...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}

	return r.getByID(ctx, id, false)
}

// Delete removes a challenge and, via cascade, its submissions.
func (r *ChallengeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SyncStatuses rewrites the stored status of every active challenge
// whose derived status (from start/end dates) has drifted. Returns the
// number of rows touched. Run periodically by the sweep job.
func (r *ChallengeRepository) SyncStatuses(ctx context.Context) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE challenges
		 SET status = derived.status, updated_at = now()
		 FROM (
			SELECT id,
				CASE
					WHEN now() < start_date THEN 'UPCOMING'
					WHEN now() > end_date THEN 'ENDED'
					ELSE 'ACTIVE'
				END AS status
			FROM challenges
			WHERE is_active = true
		 ) AS derived
		 WHERE challenges.id = derived.id
		   AND challenges.status IS DISTINCT FROM derived.status`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListSubmissions returns a challenge's submissions, most voted first.
func (r *ChallengeRepository) ListSubmissions(ctx context.Context, challengeID string) ([]model.ChallengeSubmission, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT s.id, s.challenge_id, s.user_id, s.image_url, s.caption,
			s.votes, s.created_at, u.id, u.name, u.avatar
		 FROM challenge_submissions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.challenge_id = $1
		 ORDER BY s.votes DESC, s.created_at DESC`, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []model.ChallengeSubmission
	for rows.Next() {
		var s model.ChallengeSubmission
		err := rows.Scan(
			&s.ID, &s.ChallengeID, &s.UserID, &s.ImageURL, &s.Caption,
			&s.Votes, &s.CreatedAt, &s.User.ID, &s.User.Name, &s.User.Avatar,
		)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

// CreateSubmission inserts a user's entry into a challenge.
func (r *ChallengeRepository) CreateSubmission(ctx context.Context, challengeID, userID, imageURL string, caption *string) (*model.ChallengeSubmission, error) {
	var s model.ChallengeSubmission
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO challenge_submissions (challenge_id, user_id, image_url, caption)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, challenge_id, user_id, image_url, caption, votes, created_at`,
		challengeID, userID, imageURL, caption,
	).Scan(&s.ID, &s.ChallengeID, &s.UserID, &s.ImageURL, &s.Caption, &s.Votes, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
