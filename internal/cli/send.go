package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nhle/mailpost/internal/compose"
	"github.com/nhle/mailpost/internal/post"
)

// SendOptions holds flags for the send command.
type SendOptions struct {
	Yes bool // answer confirmation prompts with yes
}

// NewSendCmd creates the send command.
func NewSendCmd(app *App) *cobra.Command {
	opts := SendOptions{}

	cmd := &cobra.Command{
		Use:   "send <file>",
		Short: "Submit a draft file by mail",
		Long: `Send converts (when a converter is configured) and mails the given
draft file. A draft without a title or directive block asks for
confirmation first; --yes skips the question.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.SendDraft(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Send without confirmation prompts")

	return cmd
}

// SendDraft runs the send flow on a draft file.
func (a *App) SendDraft(cmd *cobra.Command, path string, opts SendOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading draft %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving draft path %s: %w", path, err)
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	// The subject comes from the index when the file is known there,
	// from the filename otherwise.
	p := post.Post{Content: string(content)}
	if d, err := st.GetDraftByPath(ctx, abs); err == nil && d != nil {
		p.Title = d.Title
	} else {
		p.Title = post.DraftStem(abs)
	}

	composer, err := compose.ComposerFor(cfg)
	if err != nil {
		return err
	}

	var prompt compose.Prompter = compose.HuhPrompter{}
	if opts.Yes {
		prompt = compose.AssumeYes{}
	}

	orch := compose.New(cfg, composer, compose.ConverterFor(cfg), prompt, st)
	sent, err := orch.Send(ctx, &p, abs)
	if err != nil {
		return err
	}
	if !sent {
		fmt.Fprintln(cmd.OutOrStdout(), "Not sent.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Sent %q to %s\n", p.Title, cfg.Recipient)
	return nil
}
