package draftlist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mailpost/internal/post"
	"github.com/nhle/mailpost/internal/theme"
)

// DraftItem wraps a post.Draft so it can be used in a bubbles/list.
type DraftItem struct {
	Draft post.Draft
}

// FilterValue returns the string used for fuzzy filtering.
func (i DraftItem) FilterValue() string { return i.Draft.Title }

// Title returns the draft title for the list.
func (i DraftItem) Title() string { return i.Draft.Title }

// Description returns a short summary line for the list.
func (i DraftItem) Description() string {
	parts := []string{i.Draft.Category}
	if i.Draft.Sent() {
		parts = append(parts, "sent")
	}
	parts = append(parts, relativeTime(i.Draft.UpdatedAt))
	return strings.Join(parts, " | ")
}

// DraftDelegate implements list.ItemDelegate for rendering draft rows.
type DraftDelegate struct{}

// Height returns the number of lines each item takes.
func (d DraftDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d DraftDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d DraftDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single draft row.
func (d DraftDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	di, ok := item.(DraftItem)
	if !ok {
		return
	}

	draft := di.Draft
	isSelected := index == m.Index()

	// Prefix: ✓ for sent, ○ for pending drafts
	var prefix string
	if draft.Sent() {
		prefix = "✓"
	} else {
		prefix = "○"
	}
	prefix = theme.SentStyle(draft.Sent()).Render(prefix)

	title := draft.Title

	categoryBadge := ""
	if draft.Category != "" {
		categoryBadge = theme.CategoryLabelStyle.Render(draft.Category)
	}

	mdBadge := ""
	if draft.Converted {
		mdBadge = " " + theme.MarkdownBadgeStyle.Render("md")
	}

	timeStr := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(relativeTime(draft.UpdatedAt))

	line := fmt.Sprintf(
		"%s %s%s%s  %s",
		prefix, title, categoryBadge, mdBadge, timeStr,
	)

	// Dim drafts that already went out.
	if draft.Sent() {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}
