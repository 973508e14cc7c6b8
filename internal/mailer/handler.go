// Package mailer delivers email events queued by the API.
package mailer

import (
	"context"
	"errors"
	"net/textproto"

	"carrental/pkg/email"
	"carrental/pkg/kafka"
	"carrental/pkg/logger"
)

type Handler struct {
	gateway email.Gateway
	log     *logger.Logger
}

func NewHandler(gateway email.Gateway, log *logger.Logger) *Handler {
	return &Handler{gateway: gateway, log: log}
}

// Handle sends one queued email. Malformed events and 5xx SMTP replies are
// permanent; everything else the mail server does is retried.
func (h *Handler) Handle(ctx context.Context, msg kafka.Message) error {
	if eventType := msg.GetEventType(); eventType != "" && eventType != email.EventTypeEmailRequested {
		h.log.Warn("skipping unexpected event", "event_type", eventType, "event_id", msg.GetEventID())
		return nil
	}

	var m email.Message
	if err := msg.DecodeValue(&m); err != nil {
		return kafka.NewPermanentError("decode email event", err)
	}
	if err := m.Validate(); err != nil {
		return kafka.NewPermanentError("invalid email event", err)
	}

	if err := h.gateway.Send(ctx, m); err != nil {
		var reply *textproto.Error
		if errors.As(err, &reply) && reply.Code >= 500 {
			return kafka.NewPermanentError("mail server rejected message", err)
		}
		return kafka.NewTransientError("deliver email", err)
	}

	h.log.Info("email delivered",
		"to", m.To,
		"subject", m.Subject,
		"event_id", msg.GetEventID(),
		"correlation_id", msg.GetCorrelationID(),
	)
	return nil
}
