package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/nhle/mailpost/internal/app"
)

// RunTUI starts the interactive draft editor.
func (a *App) RunTUI() error {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("standard input is not a terminal; use the new/send subcommands for scripting")
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	model, err := app.New(cfg, st)
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
