package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/mailpost/internal/compose"
)

// NewOptions holds flags for the new command.
type NewOptions struct {
	Category string // post category; prompted when empty
	Tags     string // comma-separated tags; config default when empty
}

// NewNewCmd creates the new command.
func NewNewCmd(app *App) *cobra.Command {
	opts := NewOptions{}

	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Create an initialized draft file",
		Long: `New creates a draft file in the posts directory, pre-filled with the
directive block, and prints its path. The title and category are
prompted for when not given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) > 0 {
				title = args[0]
			}
			return app.CreatePost(cmd, title, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Post category")
	cmd.Flags().StringVarP(&opts.Tags, "tags", "t", "", "Comma-separated tags (default from config)")

	return cmd
}

// CreatePost creates and initializes a named draft file.
func (a *App) CreatePost(cmd *cobra.Command, title string, opts NewOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	prompt := compose.HuhPrompter{}

	if strings.TrimSpace(title) == "" {
		title, err = prompt.Input("Post title", "My new post", nil)
		if err != nil {
			return err
		}
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("a title is required")
	}

	category := opts.Category
	if category == "" && len(cfg.Categories) > 0 {
		category, err = prompt.Select("Category", cfg.Categories)
		if err != nil {
			return err
		}
	}

	tags := cfg.DefaultTags
	if opts.Tags != "" {
		tags = opts.Tags
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	d, _, err := compose.CreateDraft(context.Background(), cfg, st, title, category, tags)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), d.Path)
	return nil
}
