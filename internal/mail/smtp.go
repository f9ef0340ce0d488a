package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"net/textproto"

	"github.com/jordan-wright/email"

	"github.com/nhle/mailpost/internal/config"
)

// SMTP submits compositions to an SMTP relay.
type SMTP struct {
	cfg      config.SMTPConfig
	from     string
	password string
}

// NewSMTP creates a composer that delivers through cfg's relay. The
// password is passed in rather than looked up here so callers decide
// where credentials live.
func NewSMTP(cfg config.SMTPConfig, from, password string) *SMTP {
	return &SMTP{cfg: cfg, from: from, password: password}
}

func (s *SMTP) Open(recipient, subject string) (*Composition, error) {
	if s.cfg.Host == "" {
		return nil, errors.New("no smtp host configured")
	}
	return open(recipient, subject)
}

func (s *SMTP) Insert(c *Composition, body string) error {
	return insert(c, body)
}

func (s *SMTP) Send(ctx context.Context, c *Composition) error {
	if err := checkSendable(c); err != nil {
		return err
	}

	em := email.NewEmail()
	em.From = s.from
	em.To = []string{c.To}
	em.Subject = c.Subject
	em.Text = []byte(c.Body)

	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.password, s.cfg.Host)

	var err error
	switch s.cfg.Security {
	case config.SecurityTLS:
		err = em.SendWithTLS(addr, auth, &tls.Config{ServerName: s.cfg.Host})
	case config.SecurityPlain:
		err = em.Send(addr, auth)
	default:
		err = em.SendWithStartTLS(addr, auth, &tls.Config{ServerName: s.cfg.Host})
	}
	if err != nil {
		if authErr := classifyAuthError(s.cfg.Host, err); authErr != nil {
			return authErr
		}
		return fmt.Errorf("sending mail to %s: %w", c.To, err)
	}
	return nil
}

// classifyAuthError maps SMTP authentication reply codes onto
// AuthError so the UI can tell bad credentials from a flaky relay.
func classifyAuthError(host string, err error) error {
	var tpErr *textproto.Error
	if !errors.As(err, &tpErr) {
		return nil
	}
	switch tpErr.Code {
	case 530, 534, 535:
		return &AuthError{Host: host, Message: tpErr.Msg}
	}
	return nil
}
