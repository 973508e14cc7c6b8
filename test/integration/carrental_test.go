//go:build integration

package integrationtests

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"carrental/pkg/client"
	"carrental/pkg/model"
	"carrental/test/integration/common"

	"github.com/google/uuid"
)

func newSession(t *testing.T) (*client.APIClient, *common.MongoHelper) {
	t.Helper()

	api := client.NewAPIClient(common.ServerURL())
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := api.WaitForHealthy(ctx, time.Minute); err != nil {
		t.Fatalf("API never became healthy: %v", err)
	}

	mongo := common.NewMongoHelper(t)
	t.Cleanup(func() { mongo.Close(t) })
	return api, mongo
}

func uniqueUser() model.RegisterRequest {
	suffix := uuid.NewString()[:8]
	return model.RegisterRequest{
		Name:      "Integration " + suffix,
		ContactNo: fmt.Sprintf("+1555%07d", time.Now().UnixNano()%10_000_000),
		Email:     "it-" + suffix + "@example.com",
	}
}

func wantAPIError(t *testing.T, err error, status int) {
	t.Helper()
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError %d, got %v", status, err)
	}
	if apiErr.StatusCode != status {
		t.Fatalf("status = %d, want %d (%s)", apiErr.StatusCode, status, apiErr.Message)
	}
}

func TestLoginFlow(t *testing.T) {
	api, mongo := newSession(t)
	ctx := context.Background()

	user := uniqueUser()
	t.Cleanup(func() { mongo.DeleteUser(t, user.Email) })

	msg, err := api.Register(ctx, user)
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if msg != "User registered successfully. OTP sent to your email." {
		t.Errorf("Register() message = %q", msg)
	}

	_, err = api.Register(ctx, user)
	wantAPIError(t, err, http.StatusBadRequest)

	_, err = api.VerifyOTP(ctx, user.Email, "000000")
	wantAPIError(t, err, http.StatusBadRequest)

	otp := mongo.PendingOTP(t, user.Email)
	login, err := api.VerifyOTP(ctx, user.Email, otp)
	if err != nil {
		t.Fatalf("VerifyOTP() error: %v", err)
	}
	if login.Token == "" || login.User == nil || login.User.Email != user.Email {
		t.Fatalf("unexpected login: %+v", login)
	}

	_, err = api.VerifyOTP(ctx, user.Email, otp)
	wantAPIError(t, err, http.StatusBadRequest)

	if msg, err := api.Protected(ctx); err != nil || msg != "This is a protected route" {
		t.Errorf("Protected() = %q, %v", msg, err)
	}

	if err := api.RequestOTP(ctx, user.Email); err != nil {
		t.Fatalf("RequestOTP() error: %v", err)
	}
	if _, err := api.VerifyOTP(ctx, user.Email, mongo.PendingOTP(t, user.Email)); err != nil {
		t.Errorf("second login failed: %v", err)
	}
}

func TestRequestOTP_UnknownEmail(t *testing.T) {
	api, _ := newSession(t)

	err := api.RequestOTP(context.Background(), "nobody-"+uuid.NewString()[:8]+"@example.com")
	wantAPIError(t, err, http.StatusBadRequest)
}

func TestProtected_WithoutToken(t *testing.T) {
	api, _ := newSession(t)

	_, err := api.Protected(context.Background())
	wantAPIError(t, err, http.StatusUnauthorized)
}

func TestCarsAndBookings(t *testing.T) {
	api, mongo := newSession(t)
	ctx := context.Background()

	cars, err := api.ListCars(ctx)
	if err != nil {
		t.Fatalf("ListCars() error: %v", err)
	}
	if len(cars) == 0 {
		t.Skip("car catalog is empty; run the migrate command first")
	}

	user := uniqueUser()
	t.Cleanup(func() { mongo.DeleteUser(t, user.Email) })
	if _, err := api.Register(ctx, user); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	login, err := api.VerifyOTP(ctx, user.Email, mongo.PendingOTP(t, user.Email))
	if err != nil {
		t.Fatalf("VerifyOTP() error: %v", err)
	}

	empty, err := api.ListBookings(ctx, login.User.ID)
	if err != nil || len(empty) != 0 {
		t.Fatalf("new user bookings = %v, %v", empty, err)
	}

	quantity := 2
	price := 45.5
	req := &model.BookingRequest{
		UserInfo: &model.UserRef{ID: login.User.ID},
		SearchCriteria: &model.SearchCriteriaRequest{
			CarType:   cars[0].Type,
			StartDate: "2030-06-01",
			EndDate:   "2030-06-03",
			StartTime: "10:00",
			EndTime:   "18:00",
		},
		SelectedCars:    []model.SelectedCarRequest{{Car: cars[0].ID, Quantity: &quantity}},
		PickupLocation:  &model.LocationRequest{Address: "1 Airport Rd"},
		DropoffLocation: &model.LocationRequest{Address: "2 Harbour St"},
		ContactName:     user.Name,
		ContactNo:       user.ContactNo,
		ContactEmail:    user.Email,
		TotalPrice:      &price,
	}

	key := uuid.NewString()
	first, err := api.CreateBooking(ctx, req, key)
	if err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}
	replay, err := api.CreateBooking(ctx, req, key)
	if err != nil {
		t.Fatalf("replayed CreateBooking() error: %v", err)
	}
	if first.ID == "" || first.ID != replay.ID {
		t.Errorf("idempotent replay returned %q, first %q", replay.ID, first.ID)
	}

	bookings, err := api.ListBookings(ctx, login.User.ID)
	if err != nil {
		t.Fatalf("ListBookings() error: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("got %d bookings, want 1", len(bookings))
	}
	got := bookings[0]
	if got.UserInfo == nil || got.UserInfo.Email != user.Email {
		t.Errorf("booking owner not populated: %+v", got.UserInfo)
	}
	if got.TotalPrice != price || got.SelectedCars[0].Quantity != quantity {
		t.Errorf("unexpected booking: %+v", got.BookingDetails)
	}
}
