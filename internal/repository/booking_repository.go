package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/seatdesk/seat-reservation/internal/model"
)

// BookingRepo provides access to the bookings table.  Bookings reserve a
// seat for a free start/end interval, unlike the slot-based reservations.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingCols = "id, user_id, seat_id, start_time, end_time, status, created_at, updated_at"

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.SeatID, &b.StartTime, &b.EndTime,
		&b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// Create inserts a booking with status pending and returns the stored row.
func (r *BookingRepo) Create(ctx context.Context, userID, seatID uint64, start, end time.Time) (model.Booking, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO bookings (user_id, seat_id, start_time, end_time, status) VALUES (?,?,?,?,?)",
		userID, seatID, start.UTC(), end.UTC(), model.BookingPending)
	if err != nil {
		return model.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Booking{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a booking by id.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrNotFound
	}
	return b, err
}

// ListByUser returns a user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64, skip, limit int) ([]model.Booking, error) {
	return r.list(ctx, "user_id", userID, skip, limit)
}

// ListBySeat returns a seat's bookings, newest first.
func (r *BookingRepo) ListBySeat(ctx context.Context, seatID uint64, skip, limit int) ([]model.Booking, error) {
	return r.list(ctx, "seat_id", seatID, skip, limit)
}

func (r *BookingRepo) list(ctx context.Context, col string, id uint64, skip, limit int) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE "+col+" = ? ORDER BY created_at DESC LIMIT ? OFFSET ?",
		id, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// Update applies a sparse field map.  Recognized keys: start_time,
// end_time, status.
func (r *BookingRepo) Update(ctx context.Context, id uint64, fields map[string]any) (model.Booking, error) {
	query, args, ok := buildUpdate("bookings", fields,
		[]string{"start_time", "end_time", "status"}, id)
	if ok {
		if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
			return model.Booking{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// UpdateStatus transitions a booking to the given status.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) (model.Booking, error) {
	return r.Update(ctx, id, map[string]any{"status": status})
}

// Delete removes a booking permanently.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM bookings WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
