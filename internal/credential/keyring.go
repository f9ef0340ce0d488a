// Package credential stores the SMTP password in the system keyring.
// The MAILPOST_SMTP_PASSWORD environment variable overrides the
// keyring, for headless use and CI.
package credential

import (
	"errors"
	"fmt"
	"os"

	"github.com/99designs/keyring"
)

const serviceName = "mailpost"

// SMTPPasswordKey is the keyring entry holding the relay password.
const SMTPPasswordKey = "smtp-password"

// EnvSMTPPassword overrides the keyring when set.
const EnvSMTPPassword = "MAILPOST_SMTP_PASSWORD"

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/mailpost/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("mailpost-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key from the system keyring.
func Get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key in the system keyring.
func Set(key string, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key from the system keyring.
func Delete(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}

// SMTPPassword resolves the relay password: the environment variable
// when set, the keyring otherwise. A missing credential is not an
// error here; sending without auth is the relay's call to reject.
func SMTPPassword() (string, error) {
	if pw := os.Getenv(EnvSMTPPassword); pw != "" {
		return pw, nil
	}

	pw, err := Get(SMTPPasswordKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return pw, nil
}
