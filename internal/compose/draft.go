package compose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nhle/mailpost/internal/config"
	"github.com/nhle/mailpost/internal/post"
	"github.com/nhle/mailpost/internal/store"
)

// DirectiveBlock builds the shortcode block for cfg with an explicit
// tag list. The cutoff marker leads the block only when a converter
// will consume it on send.
func DirectiveBlock(cfg *config.Config, category, tags string) string {
	marker := ""
	if cfg.ConverterEnabled() {
		marker = cfg.CutoffMarker
	}

	return post.ShortcodeBlock(post.BlockOptions{
		Category:      category,
		Tags:          tags,
		CategoryIsTag: cfg.CategoryIsTag,
		CutoffMarker:  marker,
	})
}

// CreateDraft initializes a fresh post, writes it as a new draft file
// in the posts directory, and indexes it when st is not nil. It
// returns the indexed draft and the file content. An existing file
// with the same slug is an error, never overwritten.
func CreateDraft(
	ctx context.Context,
	cfg *config.Config,
	st store.Store,
	title, category, tags string,
) (post.Draft, string, error) {
	p := post.Post{Title: title}
	p.AppendBlock(DirectiveBlock(cfg, category, tags))

	dir, err := cfg.ResolvePostsDir()
	if err != nil {
		return post.Draft{}, "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return post.Draft{}, "", fmt.Errorf("creating posts directory %s: %w", dir, err)
	}

	path := post.DraftPath(dir, title, cfg.ConverterEnabled())
	if _, err := os.Stat(path); err == nil {
		return post.Draft{}, "", fmt.Errorf("draft %s already exists", filepath.Base(path))
	}
	if err := os.WriteFile(path, []byte(p.Content), 0o644); err != nil {
		return post.Draft{}, "", fmt.Errorf("writing draft %s: %w", path, err)
	}

	d := post.Draft{
		Title:     title,
		Path:      path,
		Category:  category,
		Converted: cfg.ConverterEnabled(),
	}
	if st != nil {
		if err := st.UpsertDraft(ctx, d); err != nil {
			return post.Draft{}, "", err
		}
		row, err := st.GetDraftByPath(ctx, path)
		if err != nil {
			return post.Draft{}, "", err
		}
		if row != nil {
			d = *row
		}
	}

	return d, p.Content, nil
}
