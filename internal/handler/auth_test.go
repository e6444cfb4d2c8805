package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/seatdesk/seat-reservation/internal/config"
	"github.com/seatdesk/seat-reservation/internal/repository"
)

// postJSON runs a handler against a JSON body and returns the recorder.
// These tests cover the validation paths that reject before any database
// access, so a repo with a nil connection is safe.
func postJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (int, string) {
	t.Helper()
	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	return body.Code, body.Message
}

func newTestAuthHandler() *AuthHandler {
	return NewAuthHandler(repository.NewUserRepo(nil), config.Config{
		JWTSecret:    "test-secret",
		AccessTTLMin: 15,
		BcryptCost:   4,
	})
}

func TestRegisterValidation(t *testing.T) {
	h := newTestAuthHandler()

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "missing fields",
			body:     `{"name":"alice"}`,
			wantCode: 3001,
		},
		{
			name:     "name too short",
			body:     `{"name":"a","email":"a@example.com","password":"abcdef12","confirmPassword":"abcdef12"}`,
			wantCode: 3001,
			wantMsg:  "between 2 and 50",
		},
		{
			name:     "invalid email",
			body:     `{"name":"alice","email":"nope","password":"abcdef12","confirmPassword":"abcdef12"}`,
			wantCode: 3001,
		},
		{
			name:     "weak password",
			body:     `{"name":"alice","email":"a@example.com","password":"onlyletters","confirmPassword":"onlyletters"}`,
			wantCode: 3001,
		},
		{
			name:     "password mismatch",
			body:     `{"name":"alice","email":"a@example.com","password":"abcdef12","confirmPassword":"abcdef13"}`,
			wantCode: 3002,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Register, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
			code, msg := decodeError(t, rec)
			if code != tt.wantCode {
				t.Errorf("code = %d (%q), want %d", code, msg, tt.wantCode)
			}
			if tt.wantMsg != "" && !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("message = %q, want substring %q", msg, tt.wantMsg)
			}
		})
	}
}

// A body keyed "name" must reach the field checks rather than fall
// through as missing fields; "username" is not an accepted key.
func TestRegisterBindsNameField(t *testing.T) {
	h := newTestAuthHandler()

	rec := postJSON(t, h.Register, `{"name":"al","email":"bad","password":"abcdef12","confirmPassword":"abcdef12"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if _, msg := decodeError(t, rec); !strings.Contains(msg, "email") {
		t.Errorf("message = %q, want the email check, not missing fields", msg)
	}

	rec = postJSON(t, h.Register, `{"username":"alice","email":"a@example.com","password":"abcdef12","confirmPassword":"abcdef12"}`)
	if code, _ := decodeError(t, rec); code != 3001 {
		t.Errorf("legacy username key: code = %d, want 3001 missing fields", code)
	}
}

func TestLoginValidation(t *testing.T) {
	h := newTestAuthHandler()

	for _, body := range []string{`{}`, `{"email":"a@example.com"}`, `{"password":"abcdef12"}`} {
		rec := postJSON(t, h.Login, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
		if code, _ := decodeError(t, rec); code != 1001 {
			t.Errorf("body %s: code = %d, want 1001", body, code)
		}
	}
}
