package repository

import (
	"context"

	"github.com/shutterspot/api/internal/database"
	"github.com/shutterspot/api/internal/model"
)

const userColumns = `id, email, password_hash, name, avatar, bio, location,
	website, instagram_handle, twitter_handle, portfolio_url, is_verified,
	created_at, updated_at`

// UserRepository reads and writes account rows.
type UserRepository struct {
	db *database.Database
}

func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Avatar, &u.Bio,
		&u.Location, &u.Website, &u.InstagramHandle, &u.TwitterHandle,
		&u.PortfolioURL, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user by primary key. Returns pgx.ErrNoRows when the
// id does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail fetches a user by email. Returns pgx.ErrNoRows when no
// account uses the address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

// Create inserts a new account and returns the stored row. The unique
// constraint on email surfaces as a pgconn error the sqlerr layer maps
// to a 400.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string, name *string) (*model.User, error) {
	row := r.db.Pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, name)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		email, passwordHash, name)
	return scanUser(row)
}
