package email

import (
	"context"
	"sync"
	"time"

	"carrental/pkg/logger"
)

type correlationKey struct{}

// WithCorrelationID tags ctx so that queued emails can be traced back to the request.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// Dispatcher sends messages in the background so that a slow or failing mail
// server never holds up or fails the caller. Failures are only logged.
type Dispatcher struct {
	gateway Gateway
	timeout time.Duration
	log     *logger.Logger
	wg      sync.WaitGroup
}

func NewDispatcher(gateway Gateway, timeout time.Duration, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		gateway: gateway,
		timeout: timeout,
		log:     log,
	}
}

// Dispatch returns immediately. ctx values are kept but its cancellation is not,
// so the send outlives the request that triggered it.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) {
	sendCtx := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.log.Error("panic while sending email", "panic", r, "to", msg.To, "subject", msg.Subject)
			}
		}()

		ctx, cancel := context.WithTimeout(sendCtx, d.timeout)
		defer cancel()

		start := time.Now()
		if err := d.gateway.Send(ctx, msg); err != nil {
			d.log.Error("Failed to send email",
				"error", err,
				"to", msg.To,
				"subject", msg.Subject,
				"correlation_id", CorrelationIDFromContext(ctx),
			)
			return
		}
		d.log.Info("Email sent",
			"to", msg.To,
			"subject", msg.Subject,
			"duration", time.Since(start),
		)
	}()
}

// Wait blocks until every dispatched message has been attempted.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
