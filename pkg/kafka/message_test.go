package kafka

import (
	"errors"
	"testing"
)

func TestMessageBuilder_Build(t *testing.T) {
	msg, err := NewMessage().
		WithKey("jane@example.com").
		WithValue(map[string]string{"subject": "Your OTP Code"}).
		WithEventType("email.requested").
		WithSource("carrental-api").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if msg.Key != "jane@example.com" {
		t.Errorf("Key = %q", msg.Key)
	}
	if msg.GetEventID() == "" {
		t.Error("expected generated event id")
	}
	if msg.Headers[HeaderTimestamp] == "" {
		t.Error("expected timestamp header")
	}
	if msg.GetEventType() != "email.requested" {
		t.Errorf("event type = %q", msg.GetEventType())
	}

	var decoded map[string]string
	if err := msg.DecodeValue(&decoded); err != nil {
		t.Fatalf("DecodeValue failed: %v", err)
	}
	if decoded["subject"] != "Your OTP Code" {
		t.Errorf("decoded subject = %q", decoded["subject"])
	}
}

func TestMessageBuilder_UnencodableValue(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}
}

func TestMessage_RetryCount(t *testing.T) {
	msg := Message{Headers: map[string]string{}}
	if msg.GetRetryCount() != 0 {
		t.Fatalf("initial retry count = %d", msg.GetRetryCount())
	}

	for i := 0; i < 12; i++ {
		msg.IncrementRetryCount()
	}
	if msg.GetRetryCount() != 12 {
		t.Errorf("retry count = %d, want 12", msg.GetRetryCount())
	}

	msg.Headers[HeaderRetryCount] = "garbage"
	if msg.GetRetryCount() != 0 {
		t.Errorf("unparseable retry count should read as 0")
	}
}
