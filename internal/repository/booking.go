package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/shutterspot/api/internal/database"
	"github.com/shutterspot/api/internal/model"
)

const bookingColumns = `b.id, b.location_id, b.user_id, b.start_time,
	b.end_time, b.total_hours, b.total_amount, b.status, b.purpose, b.notes,
	b.created_at, b.updated_at`

// BookingRepository reads and writes booking rows.
type BookingRepository struct {
	db *database.Database
}

func NewBookingRepository(db *database.Database) *BookingRepository {
	return &BookingRepository{db: db}
}

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID, &b.LocationID, &b.UserID, &b.StartTime, &b.EndTime,
		&b.TotalHours, &b.TotalAmount, &b.Status, &b.Purpose, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByUser returns the caller's bookings, newest first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings b
		 WHERE b.user_id = $1
		 ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// GetByID fetches a booking by primary key.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings b WHERE b.id = $1`, id)
	return scanBooking(row)
}

// Create inserts a booking and returns the stored row.
func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	row := r.db.Pool.QueryRow(ctx,
		`INSERT INTO bookings (location_id, user_id, start_time, end_time,
			total_hours, total_amount, status, purpose, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, location_id, user_id, start_time, end_time,
			total_hours, total_amount, status, purpose, notes,
			created_at, updated_at`,
		b.LocationID, b.UserID, b.StartTime, b.EndTime, b.TotalHours,
		b.TotalAmount, b.Status, b.Purpose, b.Notes)
	return scanBooking(row)
}

// UpdateStatus moves a booking to a new status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2`,
		status, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}
