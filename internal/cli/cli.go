// Package cli wires the commands of the mailpost binary.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nhle/mailpost/internal/config"
	"github.com/nhle/mailpost/internal/store"
)

// App represents the CLI application with all wired dependencies.
type App struct {
	rootCmd *cobra.Command

	// --config override; empty means the default path.
	configPath string

	// Version information (set via ldflags in main)
	version string
	commit  string
	date    string
}

// New creates a new CLI application.
func New() *App {
	app := &App{}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the build information for the version command.
func (a *App) SetVersion(version, commit, date string) {
	a.version = version
	a.commit = commit
	a.date = date
}

// setupRootCmd configures the root Cobra command. Running mailpost
// without a subcommand starts the TUI.
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "mailpost",
		Short: "Write and submit blog posts by e-mail",
		Long: `Mailpost edits blog posts as local draft files, annotates them with
shortcode directives, and submits them to a post-by-email address.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.RunTUI()
		},
	}

	a.rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Path to config file (default ~/.config/mailpost/config.yaml)")

	a.rootCmd.AddCommand(
		NewNewCmd(a),
		NewSendCmd(a),
		NewHistoryCmd(a),
		NewPasswordCmd(a),
		NewVersionCmd(a),
	)
}

// loadConfig reads the configuration file, falling back to defaults
// when it does not exist.
func (a *App) loadConfig() (*config.Config, error) {
	path := a.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

// openStore opens the draft index database in the data directory.
func (a *App) openStore() (*store.SQLiteStore, error) {
	dir := config.DefaultDataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	return store.NewSQLiteStore(filepath.Join(dir, "mailpost.db"))
}
