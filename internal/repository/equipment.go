package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/shutterspot/api/internal/database"
	"github.com/shutterspot/api/internal/model"
)

const equipmentColumns = `e.id, e.title, e.description, e.category, e.brand,
	e.model, e.condition, e.price, e.images, e.specifications, e.is_active,
	e.is_sold, e.city, e.state, e.seller_id, e.created_at, e.updated_at,
	u.id, u.name, u.avatar`

// EquipmentFilter holds the optional list filters for marketplace
// listings.
type EquipmentFilter struct {
	Search    string
	Category  string
	Condition string
	MinPrice  *float64
	MaxPrice  *float64
	ListParams
}

func (f EquipmentFilter) predicate() *Predicate {
	p := NewPredicate("e.is_active")
	p.SearchOr(f.Search, "e.title", "e.description")
	p.Eq("e.category", f.Category)
	p.Eq("e.condition", f.Condition)
	p.NumRange("e.price", f.MinPrice, f.MaxPrice)
	return p
}

// EquipmentPatch holds the optional fields of a partial update.
type EquipmentPatch struct {
	Title          *string
	Description    *string
	Category       *string
	Brand          *string
	Model          *string
	Condition      *string
	Price          *float64
	Images         []string
	Specifications *string
	IsActive       *bool
	IsSold         *bool
	City           *string
	State          *string
}

// EquipmentRepository reads and writes marketplace listing rows.
type EquipmentRepository struct {
	db *database.Database
}

func NewEquipmentRepository(db *database.Database) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func scanEquipment(row interface{ Scan(...any) error }) (*model.EquipmentListing, error) {
	var e model.EquipmentListing
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.Brand,
		&e.Model, &e.Condition, &e.Price, &e.Images, &e.Specifications,
		&e.IsActive, &e.IsSold, &e.City, &e.State, &e.SellerID,
		&e.CreatedAt, &e.UpdatedAt, &e.Seller.ID, &e.Seller.Name, &e.Seller.Avatar,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns a page of active listings matching the filter plus the
// total match count, newest first.
func (r *EquipmentRepository) List(ctx context.Context, filter EquipmentFilter) ([]model.EquipmentListing, int, error) {
	params := filter.ListParams.Normalized()

	p := filter.predicate()
	countArgs := p.Args()
	countSQL := `SELECT count(*) FROM equipment_listings e ` + p.Where()

	fetchSQL := `SELECT ` + equipmentColumns + `
		 FROM equipment_listings e
		 JOIN users u ON u.id = e.seller_id ` +
		p.Where() +
		` ORDER BY e.created_at DESC LIMIT ` + p.Bind(params.Limit) + ` OFFSET ` + p.Bind(params.Skip())
	fetchArgs := p.Args()

	var (
		total int
		items []model.EquipmentListing
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

		items = make([]model.EquipmentListing, 0, params.Limit)
		for rows.Next() {
			e, err := scanEquipment(rows)
			if err != nil {
				return err
			}
			items = append(items, *e)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetByID fetches an active listing with its seller.
func (r *EquipmentRepository) GetByID(ctx context.Context, id string) (*model.EquipmentListing, error) {
	return r.getByID(ctx, id, true)
}

// GetForUpdate fetches a listing regardless of is_active, for the
// ownership check before a mutation.
func (r *EquipmentRepository) GetForUpdate(ctx context.Context, id string) (*model.EquipmentListing, error) {
	return r.getByID(ctx, id, false)
}

func (r *EquipmentRepository) getByID(ctx context.Context, id string, activeOnly bool) (*model.EquipmentListing, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+equipmentColumns+`
		 FROM equipment_listings e
		 JOIN users u ON u.id = e.seller_id `+byIDWhere("e", activeOnly), id)
	return scanEquipment(row)
}

// Create inserts a listing for sellerID and returns the stored row.
func (r *EquipmentRepository) Create(ctx context.Context, item *model.EquipmentListing) (*model.EquipmentListing, error) {
	var id string
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO equipment_listings (title, description, category, brand,
			model, condition, price, images, specifications, city, state,
			seller_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		item.Title, item.Description, item.Category, item.Brand, item.Model,
		item.Condition, item.Price, item.Images, item.Specifications,
		item.City, item.State, item.SellerID,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Update applies a partial update and returns the fresh row.
func (r *EquipmentRepository) Update(ctx context.Context, id string, patch EquipmentPatch) (*model.EquipmentListing, error) {
	var set SetClause
	setIfPresent(&set, "title", patch.Title)
	setIfPresent(&set, "description", patch.Description)
	setIfPresent(&set, "category", patch.Category)
	setIfPresent(&set, "brand", patch.Brand)
	setIfPresent(&set, "model", patch.Model)
	setIfPresent(&set, "condition", patch.Condition)
	setIfPresent(&set, "price", patch.Price)
	if patch.Images != nil {
		set.Set("images", patch.Images)
	}
	setIfPresent(&set, "specifications", patch.Specifications)
	setIfPresent(&set, "is_active", patch.IsActive)
	setIfPresent(&set, "is_sold", patch.IsSold)
	setIfPresent(&set, "city", patch.City)
	setIfPresent(&set, "state", patch.State)

	if set.Empty() {
		return r.getByID(ctx, id, false)
	}

	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE equipment_listings SET `+set.Assignments()+` WHERE id = `+set.Bind(id),
		set.Args()...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}

	return r.getByID(ctx, id, false)
}

// Delete removes a listing.
func (r *EquipmentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM equipment_listings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
