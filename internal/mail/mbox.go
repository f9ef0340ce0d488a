package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/emersion/go-message/mail"
)

// Mbox appends compositions to a local mbox file instead of talking to
// a mail server. Useful for dry runs and for feeding other tools.
type Mbox struct {
	path string
	from string
}

// NewMbox creates a composer that appends to the mbox file at path.
func NewMbox(path, from string) *Mbox {
	if from == "" {
		from = "mailpost@localhost"
	}
	return &Mbox{path: path, from: from}
}

func (m *Mbox) Open(recipient, subject string) (*Composition, error) {
	return open(recipient, subject)
}

func (m *Mbox) Insert(c *Composition, body string) error {
	return insert(c, body)
}

func (m *Mbox) Send(ctx context.Context, c *Composition) error {
	if err := checkSendable(c); err != nil {
		return err
	}

	msg, err := m.render(c)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("creating outbox directory: %w", err)
	}
	f, err := os.OpenFile(m.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening outbox %s: %w", m.path, err)
	}
	defer f.Close()

	if err := writeMboxMessage(f, m.from, time.Now().UTC(), msg); err != nil {
		return fmt.Errorf("appending to outbox %s: %w", m.path, err)
	}
	return nil
}

// render produces the RFC 5322 message for c.
func (m *Mbox) render(c *Composition) ([]byte, error) {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: m.from}})
	h.SetAddressList("To", []*mail.Address{{Address: c.To}})
	h.SetSubject(c.Subject)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("composing message: %w", err)
	}
	if _, err := io.WriteString(w, c.Body); err != nil {
		w.Close()
		return nil, fmt.Errorf("writing message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finishing message: %w", err)
	}

	return buf.Bytes(), nil
}

// writeMboxMessage frames one message in classic mboxo format: a
// "From " separator line, the message with body lines starting in
// "From " quoted as ">From ", and a trailing blank line.
func writeMboxMessage(w io.Writer, from string, date time.Time, msg []byte) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From %s %s\n", from, date.Format(time.ANSIC))

	for _, line := range bytes.SplitAfter(msg, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		if bytes.HasPrefix(line, []byte("From ")) {
			b.WriteByte('>')
		}
		b.Write(line)
	}
	if !bytes.HasSuffix(msg, []byte("\n")) {
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	_, err := w.Write(b.Bytes())
	return err
}
