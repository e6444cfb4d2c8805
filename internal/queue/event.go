// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationEvent is published whenever a reservation changes in a way
// downstream systems care about: creation and check-in. It carries the
// denormalized seat and room details so consumers can log or notify
// without querying the primary database.
type ReservationEvent struct {
	Type          string `json:"type"` // "reservation.created" or "reservation.checked_in"
	ReservationID string `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	SeatID        uint64 `json:"seat_id"`
	SeatNumber    string `json:"seat_number"`
	Room          string `json:"room"`
	Location      string `json:"location"`
	Date          string `json:"date"`
	TimeSlot      string `json:"time_slot"`
	Status        string `json:"status"`
	OccurredAt    string `json:"occurred_at"`
}

// Event types carried in ReservationEvent.Type.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationCheckedIn = "reservation.checked_in"
)
