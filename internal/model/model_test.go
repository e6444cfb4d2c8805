package model

import "testing"

func TestUserRole(t *testing.T) {
	if got := (User{IsAdmin: true}).Role(); got != "admin" {
		t.Errorf("Role() = %q, want admin", got)
	}
	if got := (User{}).Role(); got != "user" {
		t.Errorf("Role() = %q, want user", got)
	}
}

func TestTimeSlotInterval(t *testing.T) {
	slot := TimeSlot{StartTime: "08:00", EndTime: "10:00"}
	if got := slot.Interval(); got != "08:00-10:00" {
		t.Errorf("Interval() = %q, want 08:00-10:00", got)
	}
}

func TestValidBookingStatus(t *testing.T) {
	for _, s := range []string{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted} {
		if !ValidBookingStatus(s) {
			t.Errorf("ValidBookingStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "booked", "PENDING", "done"} {
		if ValidBookingStatus(s) {
			t.Errorf("ValidBookingStatus(%q) = true", s)
		}
	}
}

func TestReservationActive(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{ReservationBooked, true},
		{ReservationCheckedIn, true},
		{ReservationCancelled, false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ReservationActive(tt.status); got != tt.want {
			t.Errorf("ReservationActive(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
