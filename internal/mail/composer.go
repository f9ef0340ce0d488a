// Package mail hands finished posts to the mail subsystem. Submission
// is fire-and-forget: a message is opened, its body inserted, and sent,
// with no retry, queueing, or delivery confirmation.
package mail

import (
	"context"
	"errors"
	"fmt"
)

// Composition is a single outgoing message being assembled.
type Composition struct {
	To      string
	Subject string
	Body    string

	inserted bool
}

// Composer drives one message through its lifecycle. The three calls
// happen strictly in order, once each per message: Open, then Insert,
// then Send.
type Composer interface {
	Open(recipient, subject string) (*Composition, error)
	Insert(c *Composition, body string) error
	Send(ctx context.Context, c *Composition) error
}

// AuthError indicates the mail server rejected our credentials.
type AuthError struct {
	Host    string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("smtp auth (%s): %s", e.Host, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an
// AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// open validates the shared preconditions for starting a composition.
func open(recipient, subject string) (*Composition, error) {
	if recipient == "" {
		return nil, errors.New("no recipient configured")
	}
	return &Composition{To: recipient, Subject: subject}, nil
}

// insert fills the body of an open composition.
func insert(c *Composition, body string) error {
	if c == nil {
		return errors.New("no open composition")
	}
	c.Body = body
	c.inserted = true
	return nil
}

// checkSendable guards Send against out-of-order use.
func checkSendable(c *Composition) error {
	if c == nil {
		return errors.New("no open composition")
	}
	if !c.inserted {
		return errors.New("composition has no body")
	}
	return nil
}
