package model

import "time"

// Room represents a bookable room containing seats.  Rooms are soft
// deleted: the IsActive flag marks a room as retired while historical
// bookings and reservations keep referencing it.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – room name.
//  Location  – free-text location (building, floor, area).
//  Capacity  – number of people the room holds (positive).
//  IsActive  – soft-delete marker; inactive rooms are hidden from listings.
//  CreatedAt – timestamp when the room was created.
//  UpdatedAt – timestamp of last update.
type Room struct {
	ID        uint64    // rooms.id
	Name      string    // rooms.name
	Location  string    // rooms.location
	Capacity  uint32    // rooms.capacity
	IsActive  bool      // rooms.is_active
	CreatedAt time.Time // rooms.created_at
	UpdatedAt time.Time // rooms.updated_at
}
