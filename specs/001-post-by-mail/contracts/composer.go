// Package contracts/composer defines the mail handoff interface.
// The composer is fire-and-forget: a submission is handed over once and
// never tracked afterwards. No retries, no queueing, no delivery or
// acceptance confirmation.
//
// Library: jordan-wright/email (SMTP transport),
// emersion/go-message (RFC 5322 rendering for the mbox outbox)
package contracts

import "context"

// Composer is the ordered three-call contract against the mail
// subsystem: Open, then Insert, then Send, once each per message.
type Composer interface {
	// Open starts a composition addressed to the configured recipient
	// with the post title as subject.
	Open(recipient, subject string) (*Composition, error)

	// Insert places the (possibly converted) post body into the
	// composition.
	Insert(c *Composition, body string) error

	// Send hands the composition to the transport. Failures propagate
	// to the caller unchanged.
	Send(ctx context.Context, c *Composition) error
}

// Composition is an in-flight message between Open and Send.
type Composition struct {
	To      string
	Subject string
	Body    string
}

// Transports:
//
// smtp:
//   Delivers through the configured host/port with username + password
//   authentication. The security mode selects the handshake:
//   - tls: implicit TLS from the first byte
//   - starttls: plain connect upgraded via STARTTLS
//   - plain: no encryption (local relays only)
//   The password comes from the system keychain (cred:smtp-password),
//   falling back to the MAILPOST_SMTP_PASSWORD environment variable.
//   Authentication rejections (SMTP 535 and friends) are classified
//   into a typed AuthError so the UI can suggest re-running
//   `mailpost password` instead of showing a bare protocol error.
//
// mbox:
//   Appends the rendered message to a local mbox file instead of
//   talking to a server. Dry runs, offline drafting, and feeding other
//   tools. Classic mboxo framing: "From " separator line, ">From "
//   quoting in the body, trailing blank line.
