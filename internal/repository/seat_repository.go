package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/seatdesk/seat-reservation/internal/model"
)

// SeatRepo provides access to the seats table.
type SeatRepo struct{ DB *sql.DB }

func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{DB: db} }

const seatCols = "id, room_id, seat_number, is_available, created_at, updated_at"

func scanSeat(row interface{ Scan(...any) error }) (model.Seat, error) {
	var s model.Seat
	err := row.Scan(&s.ID, &s.RoomID, &s.SeatNumber, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create inserts a seat.  Seat numbers are unique within a room, so a
// duplicate insert yields ErrConflict.  The owning room must exist;
// handlers pre-check it for a clean not-found response.
func (r *SeatRepo) Create(ctx context.Context, roomID uint64, seatNumber string) (model.Seat, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO seats (room_id, seat_number) VALUES (?,?)", roomID, seatNumber)
	if err != nil {
		if isDuplicate(err) {
			return model.Seat{}, ErrConflict
		}
		return model.Seat{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Seat{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a seat by id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (model.Seat, error) {
	s, err := scanSeat(r.DB.QueryRowContext(ctx,
		"SELECT "+seatCols+" FROM seats WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	return s, err
}

// List returns seats paginated by skip and limit, optionally restricted to
// one room when roomID is non-zero.
func (r *SeatRepo) List(ctx context.Context, roomID uint64, skip, limit int) ([]model.Seat, error) {
	query := "SELECT " + seatCols + " FROM seats"
	var args []any
	if roomID != 0 {
		query += " WHERE room_id = ?"
		args = append(args, roomID)
	}
	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]model.Seat, 0)
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// ListAvailable returns available seats that have no active reservation
// for the given date and time slot.  The anti-join keeps this a single
// query instead of a per-seat conflict lookup.
func (r *SeatRepo) ListAvailable(ctx context.Context, date time.Time, slotID string) ([]model.Seat, error) {
	const q = `SELECT s.id, s.room_id, s.seat_number, s.is_available, s.created_at, s.updated_at
	           FROM seats s
	           JOIN rooms rm ON rm.id = s.room_id AND rm.is_active = 1
	           WHERE s.is_available = 1
	             AND NOT EXISTS (
	                 SELECT 1 FROM reservations r
	                 WHERE r.seat_id = s.id AND r.date = ? AND r.time_slot_id = ?
	                   AND r.status IN ('booked','checked-in'))
	           ORDER BY s.id`
	rows, err := r.DB.QueryContext(ctx, q, date.Format("2006-01-02"), slotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]model.Seat, 0)
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// Update applies a sparse field map.  Recognized keys: seat_number,
// is_available.
func (r *SeatRepo) Update(ctx context.Context, id uint64, fields map[string]any) (model.Seat, error) {
	query, args, ok := buildUpdate("seats", fields,
		[]string{"seat_number", "is_available"}, id)
	if ok {
		if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
			if isDuplicate(err) {
				return model.Seat{}, ErrConflict
			}
			return model.Seat{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a seat permanently.
func (r *SeatRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM seats WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of seats.
func (r *SeatRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM seats").Scan(&n)
	return n, err
}
