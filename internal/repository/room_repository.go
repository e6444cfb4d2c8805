package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/seatdesk/seat-reservation/internal/model"
)

// RoomRepo provides access to the rooms table.  Rooms are soft deleted:
// Delete flips is_active instead of removing the row, so historical
// reservations keep resolving.
type RoomRepo struct{ DB *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{DB: db} }

const roomCols = "id, name, location, capacity, is_active, created_at, updated_at"

func scanRoom(row interface{ Scan(...any) error }) (model.Room, error) {
	var m model.Room
	err := row.Scan(&m.ID, &m.Name, &m.Location, &m.Capacity, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// Create inserts a room and returns the stored record.  The (name,
// location) pair is unique; a duplicate surfaces as ErrConflict.
func (r *RoomRepo) Create(ctx context.Context, name, location string, capacity uint32) (model.Room, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO rooms (name, location, capacity) VALUES (?,?,?)",
		name, location, capacity)
	if err != nil {
		if isDuplicate(err) {
			return model.Room{}, ErrConflict
		}
		return model.Room{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Room{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a room by id, active or not.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	m, err := scanRoom(r.DB.QueryRowContext(ctx,
		"SELECT "+roomCols+" FROM rooms WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrNotFound
	}
	return m, err
}

// List returns active rooms paginated by skip and limit.
func (r *RoomRepo) List(ctx context.Context, skip, limit int) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+roomCols+" FROM rooms WHERE is_active = 1 ORDER BY id LIMIT ? OFFSET ?",
		limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]model.Room, 0)
	for rows.Next() {
		m, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, m)
	}
	return rooms, rows.Err()
}

// Locations returns the distinct locations of active rooms.
func (r *RoomRepo) Locations(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT DISTINCT location FROM rooms WHERE is_active = 1 ORDER BY location")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locs := make([]string, 0)
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		locs = append(locs, l)
	}
	return locs, rows.Err()
}

// Update applies a sparse field map.  Recognized keys: name, location,
// capacity, is_active.
func (r *RoomRepo) Update(ctx context.Context, id uint64, fields map[string]any) (model.Room, error) {
	query, args, ok := buildUpdate("rooms", fields,
		[]string{"name", "location", "capacity", "is_active"}, id)
	if ok {
		if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
			if isDuplicate(err) {
				return model.Room{}, ErrConflict
			}
			return model.Room{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete soft-deletes a room by clearing is_active.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE rooms SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
