package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/shutterspot/api/internal/database"
	"github.com/shutterspot/api/internal/model"
)

const locationColumns = `l.id, l.title, l.description, l.type, l.vibe,
	l.address, l.city, l.state, l.country, l.latitude, l.longitude,
	l.hourly_rate, l.daily_rate, l.min_booking, l.max_booking, l.amenities,
	l.lighting, l.access, l.parking, l.wifi, l.restroom, l.images,
	l.cover_image, l.is_active, l.rating, l.review_count, l.owner_id,
	l.created_at, l.updated_at, u.id, u.name, u.avatar`

// LocationFilter holds the optional list filters for locations. Empty
// strings and nil bounds mean "no filter".
type LocationFilter struct {
	Search   string
	Type     string
	Vibe     string
	City     string
	MinPrice *float64
	MaxPrice *float64
	ListParams
}

func (f LocationFilter) predicate() *Predicate {
	p := NewPredicate("l.is_active")
	p.SearchOr(f.Search, "l.title", "l.description", "l.city")
	p.Eq("l.type", f.Type)
	p.Eq("l.vibe", f.Vibe)
	p.ILikeContains("l.city", f.City)
	p.NumRange("l.hourly_rate", f.MinPrice, f.MaxPrice)
	return p
}

// LocationPatch holds the optional fields of a partial update. Nil
// fields are left untouched.
type LocationPatch struct {
	Title       *string
	Description *string
	Type        *string
	Vibe        *string
	Address     *string
	City        *string
	State       *string
	Country     *string
	Latitude    *float64
	Longitude   *float64
	HourlyRate  *float64
	DailyRate   *float64
	MinBooking  *int
	MaxBooking  *int
	Amenities   []string
	Lighting    []string
	Access      *string
	Parking     *bool
	Wifi        *bool
	Restroom    *bool
	Images      []string
	CoverImage  *string
	IsActive    *bool
}

// LocationRepository reads and writes bookable location rows.
type LocationRepository struct {
	db *database.Database
}

func NewLocationRepository(db *database.Database) *LocationRepository {
	return &LocationRepository{db: db}
}

func scanLocation(row interface{ Scan(...any) error }) (*model.Location, error) {
	var l model.Location
	err := row.Scan(
		&l.ID, &l.Title, &l.Description, &l.Type, &l.Vibe,
		&l.Address, &l.City, &l.State, &l.Country, &l.Latitude, &l.Longitude,
		&l.HourlyRate, &l.DailyRate, &l.MinBooking, &l.MaxBooking, &l.Amenities,
		&l.Lighting, &l.Access, &l.Parking, &l.Wifi, &l.Restroom, &l.Images,
		&l.CoverImage, &l.IsActive, &l.Rating, &l.ReviewCount, &l.OwnerID,
		&l.CreatedAt, &l.UpdatedAt, &l.Owner.ID, &l.Owner.Name, &l.Owner.Avatar,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns a page of active locations matching the filter, plus the
// total match count. Count and fetch run concurrently; ordering is
// newest-first on created_at with no tie-break.
func (r *LocationRepository) List(ctx context.Context, filter LocationFilter) ([]model.Location, int, error) {
	params := filter.ListParams.Normalized()

	p := filter.predicate()
	countArgs := p.Args()
	countSQL := `SELECT count(*) FROM locations l ` + p.Where()

	fetchSQL := `SELECT ` + locationColumns + `
		 FROM locations l
		 JOIN users u ON u.id = l.owner_id ` +
		p.Where() +
		` ORDER BY l.created_at DESC LIMIT ` + p.Bind(params.Limit) + ` OFFSET ` + p.Bind(params.Skip())
	fetchArgs := p.Args()

	var (
		total     int
		locations []model.Location
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

		locations = make([]model.Location, 0, params.Limit)
		for rows.Next() {
			l, err := scanLocation(rows)
			if err != nil {
				return err
			}
			locations = append(locations, *l)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return locations, total, nil
}

// GetByID fetches an active location with its owner. Inactive or
// missing rows both surface as pgx.ErrNoRows.
func (r *LocationRepository) GetByID(ctx context.Context, id string) (*model.Location, error) {
	return r.getByID(ctx, id, true)
}

// GetForUpdate fetches a location regardless of is_active, for the
// ownership check before a mutation. A deactivated location must stay
// reachable to its owner or it could never be reactivated or deleted.
func (r *LocationRepository) GetForUpdate(ctx context.Context, id string) (*model.Location, error) {
	return r.getByID(ctx, id, false)
}

func (r *LocationRepository) getByID(ctx context.Context, id string, activeOnly bool) (*model.Location, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+locationColumns+`
		 FROM locations l
		 JOIN users u ON u.id = l.owner_id `+byIDWhere("l", activeOnly), id)
	return scanLocation(row)
}

// Create inserts a location owned by ownerID and returns the stored row
// with its owner relation.
func (r *LocationRepository) Create(ctx context.Context, loc *model.Location) (*model.Location, error) {
	var id string
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO locations (title, description, type, vibe, address, city,
			state, country, latitude, longitude, hourly_rate, daily_rate,
			min_booking, max_booking, amenities, lighting, access, parking,
			wifi, restroom, images, cover_image, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23)
		 RETURNING id`,
		loc.Title, loc.Description, loc.Type, loc.Vibe, loc.Address, loc.City,
		loc.State, loc.Country, loc.Latitude, loc.Longitude, loc.HourlyRate,
		loc.DailyRate, loc.MinBooking, loc.MaxBooking, loc.Amenities,
		loc.Lighting, loc.Access, loc.Parking, loc.Wifi, loc.Restroom,
		loc.Images, loc.CoverImage, loc.OwnerID,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Update applies a partial update and returns the fresh row. An empty
// patch is a no-op read.
func (r *LocationRepository) Update(ctx context.Context, id string, patch LocationPatch) (*model.Location, error) {
	var set SetClause
	setIfPresent(&set, "title", patch.Title)
	setIfPresent(&set, "description", patch.Description)
	setIfPresent(&set, "type", patch.Type)
	setIfPresent(&set, "vibe", patch.Vibe)
	setIfPresent(&set, "address", patch.Address)
	setIfPresent(&set, "city", patch.City)
	setIfPresent(&set, "state", patch.State)
	setIfPresent(&set, "country", patch.Country)
	setIfPresent(&set, "latitude", patch.Latitude)
	setIfPresent(&set, "longitude", patch.Longitude)
	setIfPresent(&set, "hourly_rate", patch.HourlyRate)
	setIfPresent(&set, "daily_rate", patch.DailyRate)
	setIfPresent(&set, "min_booking", patch.MinBooking)
	setIfPresent(&set, "max_booking", patch.MaxBooking)
	if patch.Amenities != nil {
		set.Set("amenities", patch.Amenities)
	}
	if patch.Lighting != nil {
		set.Set("lighting", patch.Lighting)
	}
	setIfPresent(&set, "access", patch.Access)
	setIfPresent(&set, "parking", patch.Parking)
	setIfPresent(&set, "wifi", patch.Wifi)
	setIfPresent(&set, "restroom", patch.Restroom)
	if patch.Images != nil {
		set.Set("images", patch.Images)
	}
	setIfPresent(&set, "cover_image", patch.CoverImage)
	setIfPresent(&set, "is_active", patch.IsActive)

	if set.Empty() {
		return r.getByID(ctx, id, false)
	}

	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE locations SET `+set.Assignments()+` WHERE id = `+set.Bind(id),
		set.Args()...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}

	// Read back without the active filter so a patch that deactivates
	// the row still returns it.
	return r.getByID(ctx, id, false)
}

// Delete removes a location. Missing rows surface as pgx.ErrNoRows.
func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// setIfPresent registers a column assignment when the pointer is
// non-nil.
func setIfPresent[T any](set *SetClause, column string, value *T) {
	if value != nil {
		set.Set(column, *value)
	}
}
