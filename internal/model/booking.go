package model

import "time"

// Booking statuses.  A booking moves pending → confirmed → completed, or
// is cancelled at any point before completion.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// ValidBookingStatus reports whether s is a recognized booking status.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Booking records a free-interval reservation of a seat between two
// instants, as opposed to the slot-based Reservation.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who made the booking.
//  SeatID    – seat being booked.
//  StartTime – start of the booked interval.
//  EndTime   – end of the booked interval (after StartTime).
//  Status    – one of the Booking* constants above.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Booking struct {
	ID        uint64    // bookings.id
	UserID    uint64    // bookings.user_id
	SeatID    uint64    // bookings.seat_id
	StartTime time.Time // bookings.start_time
	EndTime   time.Time // bookings.end_time
	Status    string    // bookings.status
	CreatedAt time.Time // bookings.created_at
	UpdatedAt time.Time // bookings.updated_at
}
