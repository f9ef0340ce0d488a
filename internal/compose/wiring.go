package compose

import (
	"fmt"

	"github.com/nhle/mailpost/internal/config"
	"github.com/nhle/mailpost/internal/convert"
	"github.com/nhle/mailpost/internal/credential"
	"github.com/nhle/mailpost/internal/mail"
)

// ConverterFor returns the converter selected by cfg, or nil when
// conversion is disabled.
func ConverterFor(cfg *config.Config) convert.Converter {
	switch cfg.ConverterMode() {
	case config.ConverterBuiltin:
		return convert.NewGoldmark()
	case config.ConverterCommand:
		name, args := cfg.ConverterCommandLine()
		return convert.NewCommand(name, args...)
	default:
		return nil
	}
}

// ComposerFor returns the mail transport selected by cfg. For SMTP the
// relay password is resolved here, from the environment or the system
// keyring.
func ComposerFor(cfg *config.Config) (mail.Composer, error) {
	switch cfg.Mailer {
	case config.MailerMbox:
		return mail.NewMbox(cfg.ResolveMboxPath(), cfg.SMTPFrom()), nil
	case config.MailerSMTP, "":
		password, err := credential.SMTPPassword()
		if err != nil {
			return nil, fmt.Errorf("resolving smtp password: %w", err)
		}
		return mail.NewSMTP(cfg.SMTP, cfg.SMTPFrom(), password), nil
	default:
		return nil, fmt.Errorf("unknown mailer %q", cfg.Mailer)
	}
}
