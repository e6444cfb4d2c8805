package repository

import (
	"errors"
	"testing"
)

func TestIsDuplicate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"seat dup", errors.New("Error 1062 (23000): Duplicate entry 'A1-1' for key 'uq_seats_room_number'"), true},
		{"room dup", errors.New("Error 1062 (23000): Duplicate entry 'Main-HQ' for key 'uq_rooms_name_location'"), true},
		{"other", errors.New("Error 1452 (23000): Cannot add or update a child row"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicate(tt.err); got != tt.want {
				t.Errorf("isDuplicate(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
