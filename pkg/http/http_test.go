package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "carrental/pkg/errors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  *apperrors.AppError
		want int
	}{
		{"invalid input", apperrors.InvalidInput("bad"), http.StatusBadRequest},
		{"validation", apperrors.Validation("Validation failed", nil), http.StatusBadRequest},
		{"conflict", apperrors.Conflict("User already exists"), http.StatusBadRequest},
		{"not found", apperrors.NotFound("User"), http.StatusBadRequest},
		{"invalid otp", apperrors.InvalidOTP(), http.StatusBadRequest},
		{"invalid token", apperrors.InvalidToken(nil), http.StatusBadRequest},
		{"unauthorized", apperrors.Unauthorized("Access denied"), http.StatusUnauthorized},
		{"timeout", apperrors.New(apperrors.CodeTimeout, "slow"), http.StatusGatewayTimeout},
		{"unavailable", apperrors.Unavailable("Database"), http.StatusServiceUnavailable},
		{"internal", apperrors.Internal("Server error", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("StatusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	t.Run("internal error carries cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		_ = WriteError(w, apperrors.Internal("Failed to fetch bookings", errors.New("connection reset")))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", w.Code)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Message != "Failed to fetch bookings" || resp.Error != "connection reset" {
			t.Errorf("unexpected body: %+v", resp)
		}
	})

	t.Run("client error hides cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		_ = WriteError(w, apperrors.InvalidToken(errors.New("signature is invalid")))

		var resp ErrorResponse
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if w.Code != http.StatusBadRequest || resp.Error != "" || resp.Message != "Invalid token" {
			t.Errorf("status %d body %+v", w.Code, resp)
		}
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		_ = WriteError(w, errors.New("boom"))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
	})
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Email string `json:"email"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","extra":1}`))
	if err := DecodeJSON(req, &dst); err != nil || dst.Email != "a@b.co" {
		t.Fatalf("DecodeJSON() = %v, email %q", err, dst.Email)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
	err := DecodeJSON(req, &dst)
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("malformed body: got %v", err)
	}

	w := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"`+strings.Repeat("x", 64)+`"}`))
	req.Body = http.MaxBytesReader(w, req.Body, 16)
	err = DecodeJSON(req, &dst)
	if appErr := apperrors.AsAppError(err); appErr.Message != "Request body too large" {
		t.Errorf("oversize body: got %v", err)
	}
}
