package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/seatdesk/seat-reservation/internal/model"
)

// ReservationRepo provides access to the reservations table.  Reads are
// joined through seats, rooms and time_slots so that callers get the
// enriched view in one round trip instead of a per-row lookup loop.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

// ReservationView is a reservation enriched with the seat number, the
// room it lives in and the slot interval, shaped for API responses.
type ReservationView struct {
	ID         string    `json:"id"`
	SeatID     uint64    `json:"seatId,string"`
	SeatNumber string    `json:"seatNumber"`
	Room       string    `json:"room"`
	Location   string    `json:"location"`
	UserID     uint64    `json:"userId,string"`
	Date       string    `json:"date"`
	TimeSlotID string    `json:"timeSlotId"`
	TimeSlot   string    `json:"timeSlot"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

const viewQuery = `SELECT r.id, r.seat_id, s.seat_number, rm.name, rm.location,
	   r.user_id, r.date, r.time_slot_id, CONCAT(t.start_time, '-', t.end_time),
	   r.status, r.created_at, r.updated_at
FROM reservations r
JOIN seats s ON s.id = r.seat_id
JOIN rooms rm ON rm.id = s.room_id
JOIN time_slots t ON t.id = r.time_slot_id`

func scanView(row interface{ Scan(...any) error }) (ReservationView, error) {
	var v ReservationView
	var date time.Time
	err := row.Scan(&v.ID, &v.SeatID, &v.SeatNumber, &v.Room, &v.Location,
		&v.UserID, &date, &v.TimeSlotID, &v.TimeSlot, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	v.Date = date.Format("2006-01-02")
	return v, err
}

func (r *ReservationRepo) collectViews(ctx context.Context, query string, args ...any) ([]ReservationView, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]ReservationView, 0)
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// IsSeatReserved reports whether an active reservation already occupies
// the (seat, date, time slot) combination.  Cancelled reservations do not
// block.  Read-only; the database unique index remains the authoritative
// guard against concurrent writers.
func (r *ReservationRepo) IsSeatReserved(ctx context.Context, seatID uint64, date time.Time, slotID string) (bool, error) {
	const q = `SELECT EXISTS (
		SELECT 1 FROM reservations
		WHERE seat_id = ? AND date = ? AND time_slot_id = ?
		  AND status IN ('booked','checked-in'))`
	var exists bool
	err := r.DB.QueryRowContext(ctx, q, seatID, date.Format("2006-01-02"), slotID).Scan(&exists)
	return exists, err
}

// Create inserts a reservation with status booked and returns the
// enriched view.  A violation of the active-reservation unique index
// (two concurrent writers passing the pre-check) yields ErrConflict.
func (r *ReservationRepo) Create(ctx context.Context, userID, seatID uint64, date time.Time, slotID string) (ReservationView, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO reservations (id, user_id, seat_id, date, time_slot_id, status) VALUES (?,?,?,?,?,?)",
		id, userID, seatID, date.Format("2006-01-02"), slotID, model.ReservationBooked)
	if err != nil {
		if isDuplicate(err) {
			return ReservationView{}, ErrConflict
		}
		return ReservationView{}, err
	}
	return r.GetView(ctx, id)
}

// GetView fetches the enriched view of one reservation.
func (r *ReservationRepo) GetView(ctx context.Context, id string) (ReservationView, error) {
	v, err := scanView(r.DB.QueryRowContext(ctx, viewQuery+" WHERE r.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return v, ErrNotFound
	}
	return v, err
}

// ListByUser returns all of a user's reservations, newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64, skip, limit int) ([]ReservationView, error) {
	return r.collectViews(ctx,
		viewQuery+" WHERE r.user_id = ? ORDER BY r.created_at DESC LIMIT ? OFFSET ?",
		userID, limit, skip)
}

// ListRecentByUser returns a user's most recent reservations.
func (r *ReservationRepo) ListRecentByUser(ctx context.Context, userID uint64, limit int) ([]ReservationView, error) {
	return r.collectViews(ctx,
		viewQuery+" WHERE r.user_id = ? ORDER BY r.created_at DESC LIMIT ?",
		userID, limit)
}

// ListRecentAll returns the most recent reservations across all users.
func (r *ReservationRepo) ListRecentAll(ctx context.Context, limit int) ([]ReservationView, error) {
	return r.collectViews(ctx, viewQuery+" ORDER BY r.created_at DESC LIMIT ?", limit)
}

// ListTodayCheckin returns a user's reservations for the given date that
// are still in status booked, i.e. eligible for check-in.
func (r *ReservationRepo) ListTodayCheckin(ctx context.Context, userID uint64, date time.Time) ([]ReservationView, error) {
	return r.collectViews(ctx,
		viewQuery+" WHERE r.user_id = ? AND r.date = ? AND r.status = ? ORDER BY t.start_time",
		userID, date.Format("2006-01-02"), model.ReservationBooked)
}

// UpdateStatus transitions a reservation and stamps updated_at.  The
// caller is responsible for validating the transition.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id, status string) (ReservationView, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE reservations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id)
	if err != nil {
		if isDuplicate(err) {
			return ReservationView{}, ErrConflict
		}
		return ReservationView{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ReservationView{}, ErrNotFound
	}
	return r.GetView(ctx, id)
}

// Delete removes a reservation permanently.
func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM reservations WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// StatItem is one aggregate bucket in a stats response.
type StatItem struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// StatsByStatus returns reservation counts grouped by status.
func (r *ReservationRepo) StatsByStatus(ctx context.Context) ([]StatItem, error) {
	return r.collectStats(ctx,
		"SELECT status, COUNT(*) FROM reservations GROUP BY status ORDER BY status")
}

// StatsByLocation returns reservation counts grouped by room location,
// joined through seats so no per-row lookups are needed.
func (r *ReservationRepo) StatsByLocation(ctx context.Context) ([]StatItem, error) {
	return r.collectStats(ctx,
		`SELECT rm.location, COUNT(*)
		 FROM reservations r
		 JOIN seats s ON s.id = r.seat_id
		 JOIN rooms rm ON rm.id = s.room_id
		 GROUP BY rm.location ORDER BY rm.location`)
}

func (r *ReservationRepo) collectStats(ctx context.Context, query string) ([]StatItem, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]StatItem, 0)
	for rows.Next() {
		var it StatItem
		if err := rows.Scan(&it.Name, &it.Total); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CheckinCounts returns, for the given date, the total number of
// reservations and how many of them have been checked in.
func (r *ReservationRepo) CheckinCounts(ctx context.Context, date time.Time) (total, checkedIn int, err error) {
	const q = `SELECT COUNT(*),
					  COALESCE(SUM(CASE WHEN status = 'checked-in' THEN 1 ELSE 0 END), 0)
			   FROM reservations WHERE date = ?`
	err = r.DB.QueryRowContext(ctx, q, date.Format("2006-01-02")).Scan(&total, &checkedIn)
	return total, checkedIn, err
}
