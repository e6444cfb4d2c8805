package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/seatdesk/seat-reservation/internal/cache"
	"github.com/seatdesk/seat-reservation/internal/middleware"
	"github.com/seatdesk/seat-reservation/internal/repository"
)

// postJSONAs runs a handler as an authenticated user.
func postJSONAs(t *testing.T, h echo.HandlerFunc, userID uint64, role, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxRole, role)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func newTestReservationHandler() *ReservationHandler {
	return NewReservationHandler(
		repository.NewReservationRepo(nil),
		repository.NewSeatRepo(nil),
		repository.NewTimeSlotRepo(nil),
		cache.New(nil),
		nil,
	)
}

func TestReservationCreateValidation(t *testing.T) {
	h := newTestReservationHandler()

	tests := []struct {
		name string
		body string
	}{
		{"missing seat", `{"date":"2026-09-01","timeSlotId":"slot-1"}`},
		{"missing date", `{"seatId":3,"timeSlotId":"slot-1"}`},
		{"missing slot", `{"seatId":3,"date":"2026-09-01"}`},
		{"bad date", `{"seatId":3,"date":"01/09/2026","timeSlotId":"slot-1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSONAs(t, h.Create, 1, "user", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
			if code, _ := decodeError(t, rec); code != 3001 {
				t.Errorf("code = %d, want 3001", code)
			}
		})
	}
}

func TestReservationCreateUnauthenticated(t *testing.T) {
	h := newTestReservationHandler()
	rec := postJSON(t, h.Create, `{"seatId":3,"date":"2026-09-01","timeSlotId":"slot-1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code, _ := decodeError(t, rec); code != 2001 {
		t.Errorf("code = %d, want 2001", code)
	}
}

func TestBookingCreateValidation(t *testing.T) {
	h := NewBookingHandler(repository.NewBookingRepo(nil), repository.NewSeatRepo(nil))

	tests := []struct {
		name string
		body string
	}{
		{"missing seat", `{"startTime":"2026-09-01T09:00:00Z","endTime":"2026-09-01T10:00:00Z"}`},
		{"missing times", `{"seatId":3}`},
		{"inverted interval", `{"seatId":3,"startTime":"2026-09-01T10:00:00Z","endTime":"2026-09-01T09:00:00Z"}`},
		{"empty interval", `{"seatId":3,"startTime":"2026-09-01T09:00:00Z","endTime":"2026-09-01T09:00:00Z"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSONAs(t, h.Create, 1, "user", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
			if code, _ := decodeError(t, rec); code != 3001 {
				t.Errorf("code = %d, want 3001", code)
			}
		})
	}
}
