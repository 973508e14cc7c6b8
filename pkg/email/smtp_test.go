package email

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/textproto"
	"strings"
	"testing"
)

// startRelay runs a minimal SMTP server on loopback that answers RCPT with
// rcptReply. It returns the listening port.
func startRelay(t *testing.T, rcptReply string) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveRelay(conn, rcptReply)
		}
	}()

	return ln.Addr().(*net.TCPAddr).Port
}

func serveRelay(conn net.Conn, rcptReply string) {
	defer conn.Close()
	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 localhost ready")

	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
			_ = tp.PrintfLine("250 localhost")
		case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RSET"), strings.HasPrefix(cmd, "NOOP"):
			_ = tp.PrintfLine("250 ok")
		case strings.HasPrefix(cmd, "RCPT"):
			_ = tp.PrintfLine("%s", rcptReply)
		case strings.HasPrefix(cmd, "DATA"):
			_ = tp.PrintfLine("354 go ahead")
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if strings.TrimRight(l, "\r\n") == "." {
					break
				}
			}
			_ = tp.PrintfLine("250 queued")
		case strings.HasPrefix(cmd, "QUIT"):
			_ = tp.PrintfLine("221 bye")
			return
		default:
			_ = tp.PrintfLine("502 not implemented")
		}
	}
}

func TestSMTPGateway_Relay(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		port := startRelay(t, "250 ok")
		gw := NewSMTPGateway(SMTPConfig{Host: "127.0.0.1", Port: port, From: "noreply@example.com"})

		if err := gw.Send(context.Background(), OTPMessage("jane@example.com", "123456")); err != nil {
			t.Fatalf("Send failed: %v", err)
		}
	})

	t.Run("recipient rejected keeps reply code", func(t *testing.T) {
		port := startRelay(t, "550 mailbox unavailable")
		gw := NewSMTPGateway(SMTPConfig{Host: "127.0.0.1", Port: port, From: "Car Rental <noreply@example.com>"})

		err := gw.Send(context.Background(), OTPMessage("ghost@example.com", "123456"))
		if err == nil {
			t.Fatal("expected rejection")
		}
		var reply *textproto.Error
		if !errors.As(err, &reply) {
			t.Fatalf("expected *textproto.Error in chain, got %T: %v", err, err)
		}
		if reply.Code != 550 {
			t.Errorf("reply code = %d, want 550", reply.Code)
		}
	})
}

func TestEnvelopeAddress(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"noreply@example.com", "noreply@example.com"},
		{"Car Rental <noreply@example.com>", "noreply@example.com"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		if got := envelopeAddress(tt.in); got != tt.want {
			t.Errorf("envelopeAddress(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
