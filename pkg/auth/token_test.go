package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	if !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m, err := NewTokenManager(testSecret, time.Hour, WithClock(fixedClock(now)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, expiresAt, err := m.Issue("665f1c2e9b1d4a3f8c7e2b10")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("expiresAt = %v, want %v", expiresAt, now.Add(time.Hour))
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.ID != "665f1c2e9b1d4a3f8c7e2b10" {
		t.Errorf("claims.ID = %q, want %q", claims.ID, "665f1c2e9b1d4a3f8c7e2b10")
	}
	if claims.IssuedAt == nil || !claims.IssuedAt.Time.Equal(now) {
		t.Errorf("claims.IssuedAt = %v, want %v", claims.IssuedAt, now)
	}
}

func TestIssue_EmptyUserID(t *testing.T) {
	m, _ := NewTokenManager(testSecret, time.Hour)
	if _, _, err := m.Issue(""); !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	issuedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer, _ := NewTokenManager(testSecret, time.Hour, WithClock(fixedClock(issuedAt)))
	token, _, err := issuer.Issue("665f1c2e9b1d4a3f8c7e2b10")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr bool
	}{
		{"just issued", issuedAt, false},
		{"59 minutes later", issuedAt.Add(59 * time.Minute), false},
		{"61 minutes later", issuedAt.Add(61 * time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier, _ := NewTokenManager(testSecret, time.Hour, WithClock(fixedClock(tt.at)))
			_, err := verifier.Verify(token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, jwt.ErrTokenExpired) {
				t.Errorf("expected ErrTokenExpired, got %v", err)
			}
		})
	}
}

func TestVerify_Rejects(t *testing.T) {
	m, _ := NewTokenManager(testSecret, time.Hour)
	other, _ := NewTokenManager("another-secret", time.Hour)

	foreign, _, err := other.Issue("665f1c2e9b1d4a3f8c7e2b10")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	valid, _, _ := m.Issue("665f1c2e9b1d4a3f8c7e2b10")
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		ID: "665f1c2e9b1d4a3f8c7e2b10",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{ID: "665f1c2e9b1d4a3f8c7e2b10"}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong secret", foreign},
		{"tampered payload", tampered},
		{"alg none", noneToken},
		{"missing expiry", noExpiry},
		{"missing user id", noID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Verify(tt.token); err == nil {
				t.Fatalf("expected Verify(%q) to fail", tt.name)
			}
		})
	}
}
