package kafka

import (
	"context"
	"errors"
	"testing"

	"carrental/pkg/logger"
)

func newTestConsumer(handler MessageHandler, maxRetries int) *Consumer {
	return &Consumer{
		topic:      "carrental.email.outbound",
		groupID:    "carrental-mailer",
		maxRetries: maxRetries,
		handler:    handler,
		log:        logger.Discard(),
	}
}

func TestProcessMessage_RetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	c := newTestConsumer(func(ctx context.Context, msg Message) error {
		calls++
		if calls < 3 {
			return NewTransientError("smtp unavailable", nil)
		}
		return nil
	}, 3)

	err := c.processMessage(context.Background(), Message{Headers: map[string]string{}})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Errorf("handler called %d times, want 3", calls)
	}
}

func TestProcessMessage_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	c := newTestConsumer(func(ctx context.Context, msg Message) error {
		calls++
		return NewTransientError("smtp unavailable", nil)
	}, 2)

	err := c.processMessage(context.Background(), Message{Headers: map[string]string{}})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("handler called %d times, want 3 (1 + 2 retries)", calls)
	}
}

func TestProcessMessage_PermanentNotRetried(t *testing.T) {
	calls := 0
	c := newTestConsumer(func(ctx context.Context, msg Message) error {
		calls++
		return NewPermanentError("bad payload", errors.New("json"))
	}, 5)

	if err := c.processMessage(context.Background(), Message{Headers: map[string]string{}}); err == nil {
		t.Fatal("expected permanent error")
	}
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
}

func TestProcessMessage_MiddlewareOrder(t *testing.T) {
	var order []string
	c := newTestConsumer(func(ctx context.Context, msg Message) error {
		order = append(order, "handler")
		return nil
	}, 0)
	c.Use(func(ctx context.Context, msg Message, next MessageHandler) error {
		order = append(order, "first")
		return next(ctx, msg)
	})
	c.Use(func(ctx context.Context, msg Message, next MessageHandler) error {
		order = append(order, "second")
		return next(ctx, msg)
	})

	if err := c.processMessage(context.Background(), Message{Headers: map[string]string{}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"first", "second", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
