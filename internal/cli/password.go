package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/mailpost/internal/credential"
)

// PasswordOptions holds flags for the password command.
type PasswordOptions struct {
	Clear bool // remove the stored password instead of setting one
}

// NewPasswordCmd creates the password command.
func NewPasswordCmd(app *App) *cobra.Command {
	opts := PasswordOptions{}

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Store the SMTP relay password in the system keyring",
		Long: `Password prompts for the SMTP relay password and stores it in the
system keyring. The ` + credential.EnvSMTPPassword + ` environment
variable overrides the keyring when set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Clear {
				return app.ClearPassword(cmd)
			}
			return app.StorePassword(cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "Remove the stored password")

	return cmd
}

// StorePassword prompts for the relay password and saves it.
func (a *App) StorePassword(cmd *cobra.Command) error {
	var password string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("SMTP password").
			EchoMode(huh.EchoModePassword).
			Value(&password),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("password prompt: %w", err)
	}
	if password == "" {
		return fmt.Errorf("no password given")
	}

	if err := credential.Set(credential.SMTPPasswordKey, password); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Password stored in the system keyring.")
	return nil
}

// ClearPassword removes the stored password.
func (a *App) ClearPassword(cmd *cobra.Command) error {
	if err := credential.Delete(credential.SMTPPasswordKey); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Password removed from the system keyring.")
	return nil
}
