package handler

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCheckinRate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		checkedIn int
		want      float64
	}{
		{"no reservations", 0, 0, 0},
		{"none checked in", 4, 0, 0},
		{"half checked in", 4, 2, 0.5},
		{"all checked in", 3, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkinRate(tt.total, tt.checkedIn); got != tt.want {
				t.Errorf("checkinRate(%d, %d) = %v, want %v", tt.total, tt.checkedIn, got, tt.want)
			}
		})
	}
}

func TestDashboardStatsPayloadShape(t *testing.T) {
	out := dashboardStats{
		Users:            2,
		Seats:            10,
		Reservations:     5,
		TodayTotal:       4,
		TodayCheckedIn:   1,
		TodayCheckinRate: checkinRate(4, 1),
	}
	raw, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{"todayReservations", "todayCheckedIn", "todayCheckinRate"} {
		if !strings.Contains(string(raw), `"`+key+`"`) {
			t.Errorf("payload %s missing %q", raw, key)
		}
	}
	if !strings.Contains(string(raw), `"todayCheckinRate":0.25`) {
		t.Errorf("payload %s: todayCheckinRate not 0.25", raw)
	}
}
