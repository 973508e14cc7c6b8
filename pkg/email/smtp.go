package email

import (
	"context"
	"fmt"
	"net/mail"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type dialer interface {
	Dial() (gomail.SendCloser, error)
}

// SMTPGateway sends through an SMTP relay. STARTTLS is used when the server offers it.
type SMTPGateway struct {
	from   string
	dialer dialer
}

func NewSMTPGateway(cfg SMTPConfig) *SMTPGateway {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPGateway{
		from:   from,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (g *SMTPGateway) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", g.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.HTML {
		m.SetBody("text/html", msg.Body)
	} else {
		m.SetBody("text/plain", msg.Body)
	}

	// gomail has no context support; the send keeps running in the background
	// if ctx ends first, but the caller is released.
	done := make(chan error, 1)
	go func() {
		done <- g.deliver(m, msg.To)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send to %s: %w", msg.To, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send to %s: %w", msg.To, ctx.Err())
	}
}

// deliver talks to the relay directly instead of gomail.Send so the
// *textproto.Error carrying the SMTP reply code reaches the caller.
func (g *SMTPGateway) deliver(m *gomail.Message, to string) error {
	sender, err := g.dialer.Dial()
	if err != nil {
		return err
	}
	defer sender.Close()

	return sender.Send(envelopeAddress(g.from), []string{envelopeAddress(to)}, m)
}

func envelopeAddress(addr string) string {
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return addr
	}
	return parsed.Address
}
