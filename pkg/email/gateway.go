// Package email delivers transactional mail. Callers build a Message from one
// of the templates and hand it to a Dispatcher, which sends it in the
// background through whichever Gateway is configured.
package email

import (
	"context"
	"errors"
	"net/mail"
)

var (
	ErrNoRecipient = errors.New("email: message has no recipient")
	ErrNoSubject   = errors.New("email: message has no subject")
)

type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	HTML    bool   `json:"html"`
}

func (m Message) Validate() error {
	if m.To == "" {
		return ErrNoRecipient
	}
	if _, err := mail.ParseAddress(m.To); err != nil {
		return err
	}
	if m.Subject == "" {
		return ErrNoSubject
	}
	return nil
}

// Gateway sends one message. Implementations must honor ctx cancellation.
type Gateway interface {
	Send(ctx context.Context, msg Message) error
}

type GatewayFunc func(ctx context.Context, msg Message) error

func (f GatewayFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}
