package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"carrental/pkg/model"
)

const idempotencyHeader = "Idempotency-Key"

// APIError is returned for any non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Login struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}

// APIClient speaks the car rental API. After a successful VerifyOTP the
// session token is kept and sent on protected calls.
type APIClient struct {
	http  *HttpClient
	Token string
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{http: NewHttpClient(baseURL)}
}

func (c *APIClient) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	return c.http.WaitForHealthy(ctx, maxWait)
}

func (c *APIClient) Register(ctx context.Context, req model.RegisterRequest) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.post(ctx, "/register", req, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *APIClient) RequestOTP(ctx context.Context, email string) error {
	return c.post(ctx, "/request-otp", model.RequestOTPRequest{Email: email}, nil, nil)
}

func (c *APIClient) VerifyOTP(ctx context.Context, email, otp string) (*Login, error) {
	var out Login
	if err := c.post(ctx, "/verify-otp", model.VerifyOTPRequest{Email: email, OTP: otp}, nil, &out); err != nil {
		return nil, err
	}
	c.Token = out.Token
	return &out, nil
}

func (c *APIClient) Protected(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.get(ctx, "/protected", &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// CreateBooking posts req. A non-empty idempotencyKey makes retries safe.
func (c *APIClient) CreateBooking(ctx context.Context, req *model.BookingRequest, idempotencyKey string) (*model.Booking, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{idempotencyHeader: idempotencyKey}
	}

	var out model.BookingCreated
	if err := c.post(ctx, "/booking/api/bookings", req, headers, &out); err != nil {
		return nil, err
	}
	return out.Booking, nil
}

func (c *APIClient) ListBookings(ctx context.Context, userID string) ([]*model.PopulatedBooking, error) {
	var out model.BookingList
	if err := c.get(ctx, "/booking/api/bookings/user/"+url.PathEscape(userID), &out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

func (c *APIClient) ListCars(ctx context.Context) ([]*model.Car, error) {
	var out []*model.Car
	if err := c.get(ctx, "/cars/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) post(ctx context.Context, path string, body any, headers map[string]string, out any) error {
	resp, err := c.http.POST(ctx, path, body, c.withAuth(headers))
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *APIClient) get(ctx context.Context, path string, out any) error {
	resp, err := c.http.GET(ctx, path, c.withAuth(nil))
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *APIClient) withAuth(headers map[string]string) map[string]string {
	if c.Token == "" {
		return headers
	}
	merged := map[string]string{"Authorization": "Bearer " + c.Token}
	for k, v := range headers {
		merged[k] = v
	}
	return merged
}

func decode(resp *Response, out any) error {
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: GetErrorMessage(resp)}
		var body struct {
			Code string `json:"code"`
		}
		if resp.DecodeJSON(&body) == nil {
			apiErr.Code = body.Code
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := resp.DecodeJSON(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", resp.Request.URL.Path, err)
	}
	return nil
}
