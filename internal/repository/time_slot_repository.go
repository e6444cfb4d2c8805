package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/seatdesk/seat-reservation/internal/model"
)

// TimeSlotRepo provides access to the time_slots table.  Slot ids are
// opaque UUID strings generated at insert time.  Slots are soft deleted
// like rooms.
type TimeSlotRepo struct{ DB *sql.DB }

func NewTimeSlotRepo(db *sql.DB) *TimeSlotRepo { return &TimeSlotRepo{DB: db} }

const slotCols = "id, start_time, end_time, name, description, is_active, created_at, updated_at"

func scanSlot(row interface{ Scan(...any) error }) (model.TimeSlot, error) {
	var t model.TimeSlot
	var desc sql.NullString
	err := row.Scan(&t.ID, &t.StartTime, &t.EndTime, &t.Name, &desc, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if desc.Valid {
		d := desc.String
		t.Description = &d
	}
	return t, err
}

// Create inserts a time slot and returns the stored record.
func (r *TimeSlotRepo) Create(ctx context.Context, startTime, endTime, name string, description *string) (model.TimeSlot, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO time_slots (id, start_time, end_time, name, description) VALUES (?,?,?,?,?)",
		id, startTime, endTime, name, description)
	if err != nil {
		return model.TimeSlot{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a time slot by id, active or not.
func (r *TimeSlotRepo) GetByID(ctx context.Context, id string) (model.TimeSlot, error) {
	t, err := scanSlot(r.DB.QueryRowContext(ctx,
		"SELECT "+slotCols+" FROM time_slots WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNotFound
	}
	return t, err
}

// List returns active time slots ordered by start time.
func (r *TimeSlotRepo) List(ctx context.Context, skip, limit int) ([]model.TimeSlot, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+slotCols+" FROM time_slots WHERE is_active = 1 ORDER BY start_time LIMIT ? OFFSET ?",
		limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSlots(rows)
}

// ListAvailableForSeat returns active slots not actively reserved for the
// given seat on the given date.  Cancelled reservations do not block.
func (r *TimeSlotRepo) ListAvailableForSeat(ctx context.Context, date time.Time, seatID uint64) ([]model.TimeSlot, error) {
	const q = `SELECT t.id, t.start_time, t.end_time, t.name, t.description, t.is_active, t.created_at, t.updated_at
	           FROM time_slots t
	           WHERE t.is_active = 1
	             AND NOT EXISTS (
	                 SELECT 1 FROM reservations r
	                 WHERE r.time_slot_id = t.id AND r.seat_id = ? AND r.date = ?
	                   AND r.status IN ('booked','checked-in'))
	           ORDER BY t.start_time`
	rows, err := r.DB.QueryContext(ctx, q, seatID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSlots(rows)
}

func collectSlots(rows *sql.Rows) ([]model.TimeSlot, error) {
	slots := make([]model.TimeSlot, 0)
	for rows.Next() {
		t, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, t)
	}
	return slots, rows.Err()
}

// Update applies a sparse field map.  Recognized keys: start_time,
// end_time, name, description, is_active.
func (r *TimeSlotRepo) Update(ctx context.Context, id string, fields map[string]any) (model.TimeSlot, error) {
	query, args, ok := buildUpdate("time_slots", fields,
		[]string{"start_time", "end_time", "name", "description", "is_active"}, id)
	if ok {
		if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
			return model.TimeSlot{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete soft-deletes a time slot by clearing is_active.
func (r *TimeSlotRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE time_slots SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
