package model

import "time"

// Reservation statuses.  A reservation is created directly as "booked"
// (there is no separate confirmation step), may transition to
// "checked-in" once, and counts toward seat conflicts while in either of
// those states.  Cancellation removes the row; the label exists for the
// synthesized view returned to the caller.
const (
	ReservationBooked    = "booked"
	ReservationCheckedIn = "checked-in"
	ReservationCancelled = "cancelled"
)

// ReservationActive reports whether a reservation in status s still
// blocks its (seat, date, time slot) combination.
func ReservationActive(s string) bool {
	return s == ReservationBooked || s == ReservationCheckedIn
}

// Reservation is a (user, seat, date, time slot) booking record.  The
// date carries no time component; the slot supplies the daily interval.
//
// Fields:
//  ID         – opaque UUID string.
//  UserID     – owning user.
//  SeatID     – reserved seat.
//  Date       – calendar date of the reservation.
//  TimeSlotID – reserved time slot.
//  Status     – one of the Reservation* constants above.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Reservation struct {
	ID         string    // reservations.id
	UserID     uint64    // reservations.user_id
	SeatID     uint64    // reservations.seat_id
	Date       time.Time // reservations.date
	TimeSlotID string    // reservations.time_slot_id
	Status     string    // reservations.status
	CreatedAt  time.Time // reservations.created_at
	UpdatedAt  time.Time // reservations.updated_at
}
