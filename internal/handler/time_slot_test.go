package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/seatdesk/seat-reservation/internal/repository"
)

func TestValidClock(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"08:00", true},
		{"23:59", true},
		{"24:00", false},
		{"8:00", false},
		{"08:60", false},
		{"", false},
		{"08:00:00", false},
	}
	for _, tt := range tests {
		if got := validClock(tt.in); got != tt.want {
			t.Errorf("validClock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTimeSlotCreateValidation(t *testing.T) {
	h := NewTimeSlotHandler(repository.NewTimeSlotRepo(nil))

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"startTime":"08:00","endTime":"10:00"}`},
		{"bad clock", `{"name":"Morning","startTime":"8am","endTime":"10:00"}`},
		{"inverted interval", `{"name":"Morning","startTime":"10:00","endTime":"08:00"}`},
		{"empty interval", `{"name":"Morning","startTime":"08:00","endTime":"08:00"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Create, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
			if code, _ := decodeError(t, rec); code != 3001 {
				t.Errorf("code = %d, want 3001", code)
			}
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query     string
		wantSkip  int
		wantLimit int
	}{
		{"", 0, 20},
		{"skip=30&limit=10", 30, 10},
		{"skip=-5&limit=0", 0, 20},
		{"limit=500", 0, 100},
		{"skip=abc&limit=xyz", 0, 20},
	}
	e := echo.New()
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		skip, limit := parsePage(c)
		if skip != tt.wantSkip || limit != tt.wantLimit {
			t.Errorf("parsePage(%q) = (%d, %d), want (%d, %d)",
				tt.query, skip, limit, tt.wantSkip, tt.wantLimit)
		}
	}
}
