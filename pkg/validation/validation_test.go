package validation

import (
	"errors"
	"testing"
	"time"
)

type contactForm struct {
	Phone string `json:"phone" validate:"required,contact_no"`
	Date  string `json:"date" validate:"omitempty,booking_date"`
	Inner *inner `json:"inner" validate:"omitempty"`
}

type inner struct {
	Email string `json:"email" validate:"required,email"`
}

func TestStruct_CustomTags(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name      string
		form      contactForm
		wantField string
	}{
		{"valid e164", contactForm{Phone: "+12125551234"}, ""},
		{"valid local with separators", contactForm{Phone: "(212) 555-1234"}, ""},
		{"too short", contactForm{Phone: "12345"}, "phone"},
		{"letters", contactForm{Phone: "555-CALL-NOW"}, "phone"},
		{"too long", contactForm{Phone: "+1234567890123456"}, "phone"},
		{"date only", contactForm{Phone: "+12125551234", Date: "2024-06-01"}, ""},
		{"rfc3339", contactForm{Phone: "+12125551234", Date: "2024-06-01T10:00:00Z"}, ""},
		{"bad date", contactForm{Phone: "+12125551234", Date: "06/01/2024"}, "date"},
		{"nested json name", contactForm{Phone: "+12125551234", Inner: &inner{Email: "nope"}}, "inner.email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(v, &tt.form)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if len(verrs) != 1 || verrs[0].Field != tt.wantField {
				t.Fatalf("errors = %v, want single error on %q", verrs, tt.wantField)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-01")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, err = ParseDate("2024-06-01T12:30:00+02:00")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if want := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := ParseDate("tomorrow"); err == nil {
		t.Error("expected error for unparseable date")
	}
}
