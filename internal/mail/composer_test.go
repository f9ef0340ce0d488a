package mail

import (
	"context"
	"errors"
	"fmt"
	"net/textproto"
	"testing"

	"github.com/nhle/mailpost/internal/config"
)

func TestOpenRequiresRecipient(t *testing.T) {
	cfg := config.SMTPConfig{Host: "smtp.example.com", Port: "587"}
	s := NewSMTP(cfg, "me@example.com", "secret")

	if _, err := s.Open("", "Subject"); err == nil {
		t.Fatal("expected error for empty recipient, got nil")
	}

	c, err := s.Open("post@example.com", "Hello")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if c.To != "post@example.com" || c.Subject != "Hello" {
		t.Errorf("Open() = %+v, want To and Subject set", c)
	}
}

func TestOpenRequiresHost(t *testing.T) {
	s := NewSMTP(config.SMTPConfig{}, "me@example.com", "secret")
	if _, err := s.Open("post@example.com", "Hello"); err == nil {
		t.Fatal("expected error for missing smtp host, got nil")
	}
}

func TestSendRequiresInsert(t *testing.T) {
	cfg := config.SMTPConfig{Host: "smtp.example.com", Port: "587"}
	s := NewSMTP(cfg, "me@example.com", "secret")

	c, err := s.Open("post@example.com", "Hello")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := s.Send(context.Background(), c); err == nil {
		t.Error("expected error sending before Insert, got nil")
	}
	if err := s.Send(context.Background(), nil); err == nil {
		t.Error("expected error sending nil composition, got nil")
	}
}

func TestInsertFillsBody(t *testing.T) {
	cfg := config.SMTPConfig{Host: "smtp.example.com", Port: "587"}
	s := NewSMTP(cfg, "me@example.com", "secret")

	c, err := s.Open("post@example.com", "Hello")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Insert(c, "the body"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if c.Body != "the body" {
		t.Errorf("Body = %q, want %q", c.Body, "the body")
	}

	if err := s.Insert(nil, "x"); err == nil {
		t.Error("expected error inserting into nil composition, got nil")
	}
}

func TestClassifyAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		auth bool
	}{
		{
			name: "bad credentials",
			err:  &textproto.Error{Code: 535, Msg: "5.7.8 authentication failed"},
			auth: true,
		},
		{
			name: "auth required",
			err:  &textproto.Error{Code: 530, Msg: "5.7.0 authentication required"},
			auth: true,
		},
		{
			name: "wrapped",
			err:  fmt.Errorf("talking to relay: %w", &textproto.Error{Code: 535, Msg: "no"}),
			auth: true,
		},
		{
			name: "mailbox unavailable",
			err:  &textproto.Error{Code: 550, Msg: "mailbox unavailable"},
			auth: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			auth: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyAuthError("smtp.example.com", tt.err)
			if tt.auth {
				if got == nil {
					t.Fatal("classifyAuthError() = nil, want AuthError")
				}
				if !IsAuthError(got) {
					t.Errorf("IsAuthError(%v) = false, want true", got)
				}
			} else if got != nil {
				t.Errorf("classifyAuthError() = %v, want nil", got)
			}
		})
	}
}

func TestIsAuthError(t *testing.T) {
	err := fmt.Errorf("sending: %w", &AuthError{Host: "smtp.example.com", Message: "denied"})
	if !IsAuthError(err) {
		t.Error("IsAuthError() = false for wrapped AuthError, want true")
	}
	if IsAuthError(errors.New("other")) {
		t.Error("IsAuthError() = true for unrelated error, want false")
	}
}
