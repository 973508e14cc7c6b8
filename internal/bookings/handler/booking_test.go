package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"carrental/internal/bookings/service"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/logger"
	"carrental/pkg/middleware"
	"carrental/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	createFunc      func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	listForUserFunc func(ctx context.Context, userID string) ([]*model.PopulatedBooking, error)
	createCalls     int
}

func (m *mockBookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &model.Booking{ID: "b1"}, nil
}

func (m *mockBookingService) ListForUser(ctx context.Context, userID string) ([]*model.PopulatedBooking, error) {
	if m.listForUserFunc != nil {
		return m.listForUserFunc(ctx, userID)
	}
	return []*model.PopulatedBooking{}, nil
}

func newTestRouter(svc *mockBookingService, idempotency func(http.Handler) http.Handler) *httprouter.Router {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	router := httprouter.New()
	NewBookingHandler(svc, log, idempotency).RegisterRoutes(router)
	return router
}

const bookingBody = `{"userInfo":{"_id":"65f000000000000000000001"},"totalPrice":45.5}`

func TestCreate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		serviceErr  error
		wantStatus  int
		wantMessage string
		wantError   bool
	}{
		{
			name:        "created",
			body:        bookingBody,
			wantStatus:  http.StatusCreated,
			wantMessage: "Booking created successfully",
		},
		{
			name: "validation",
			body: bookingBody,
			serviceErr: apperrors.Validation("Validation failed", map[string]any{
				"errors": []map[string]string{{"field": "selectedCars", "message": "selectedCars is required"}},
			}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Validation failed",
		},
		{
			name:        "store failure",
			body:        bookingBody,
			serviceErr:  apperrors.Internal(service.MsgCreateFailed, errors.New("no primary")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: service.MsgCreateFailed,
			wantError:   true,
		},
		{
			name:        "malformed json",
			body:        `[1,2`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				createFunc: func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &model.Booking{ID: "b1", BookingDetails: model.BookingDetails{TotalPrice: *req.TotalPrice}}, nil
				},
			}
			router := newTestRouter(svc, nil)

			req := httptest.NewRequest(http.MethodPost, "/booking/api/bookings", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}

			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body["message"] != tt.wantMessage {
				t.Errorf("message = %v, want %q", body["message"], tt.wantMessage)
			}
			if _, ok := body["error"]; ok != tt.wantError {
				t.Errorf("error field present = %v, want %v", ok, tt.wantError)
			}
			if tt.wantStatus == http.StatusCreated {
				booking, _ := body["booking"].(map[string]any)
				if booking["_id"] != "b1" || booking["totalPrice"] != 45.5 {
					t.Errorf("booking = %v", booking)
				}
			}
		})
	}
}

func TestCreate_IdempotentReplay(t *testing.T) {
	store := middleware.NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	svc := &mockBookingService{}
	router := newTestRouter(svc, middleware.Idempotency(store))

	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/booking/api/bookings", strings.NewReader(bookingBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", w.Code)
		}
	}
	if svc.createCalls != 1 {
		t.Errorf("service called %d times, want 1", svc.createCalls)
	}
}

func TestListForUser(t *testing.T) {
	var gotUserID string
	svc := &mockBookingService{
		listForUserFunc: func(ctx context.Context, userID string) ([]*model.PopulatedBooking, error) {
			gotUserID = userID
			return []*model.PopulatedBooking{
				{ID: "b1", UserInfo: &model.User{ID: userID, Name: "Ada"}},
			}, nil
		},
	}
	router := newTestRouter(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/booking/api/bookings/user/65f000000000000000000001", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotUserID != "65f000000000000000000001" {
		t.Errorf("service got user id %q", gotUserID)
	}

	var body struct {
		Bookings []struct {
			ID       string `json:"_id"`
			UserInfo struct {
				Name string `json:"name"`
			} `json:"userInfo"`
		} `json:"bookings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Bookings) != 1 || body.Bookings[0].UserInfo.Name != "Ada" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestListForUser_EmptyIsArray(t *testing.T) {
	router := newTestRouter(&mockBookingService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/booking/api/bookings/user/whoever", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"bookings":[]}` {
		t.Errorf("body = %s", got)
	}
}

func TestListForUser_Failure(t *testing.T) {
	svc := &mockBookingService{
		listForUserFunc: func(ctx context.Context, userID string) ([]*model.PopulatedBooking, error) {
			return nil, apperrors.Internal(service.MsgListFailed, errors.New("boom"))
		},
	}
	router := newTestRouter(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/booking/api/bookings/user/65f000000000000000000001", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), service.MsgListFailed) {
		t.Errorf("body = %s", w.Body.String())
	}
}
