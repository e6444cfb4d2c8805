package model

import "time"

// Seat describes a bookable seat inside a room.  The owning room must
// exist when the seat is created.  IsAvailable is an administrative flag
// (a seat taken out of service), distinct from being reserved for a given
// date and time slot.
type Seat struct {
	ID          uint64    // seats.id
	RoomID      uint64    // seats.room_id
	SeatNumber  string    // seats.seat_number
	IsAvailable bool      // seats.is_available
	CreatedAt   time.Time // seats.created_at
	UpdatedAt   time.Time // seats.updated_at
}
