package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mailpost/internal/compose"
	"github.com/nhle/mailpost/internal/post"
)

// postCreatedMsg carries a freshly written draft, ready for the editor.
type postCreatedMsg struct {
	draft   post.Draft
	content string
	err     error
}

// sendResultMsg reports the outcome of a send flow.
type sendResultMsg struct {
	title string
	err   error
}

// createPost initializes a fresh post, writes its draft file, and
// indexes it. The resulting message opens the editor on success.
func (m *Model) createPost(title, category, tags string) tea.Cmd {
	cfg := m.cfg
	st := m.store

	return func() tea.Msg {
		d, content, err := compose.CreateDraft(context.Background(), cfg, st, title, category, tags)
		if err != nil {
			return postCreatedMsg{err: err}
		}
		return postCreatedMsg{draft: d, content: content}
	}
}

// sendPost runs the send flow off the update loop; SMTP can block for
// a while.
func (m *Model) sendPost(p post.Post, path string) tea.Cmd {
	orch := m.orch

	return func() tea.Msg {
		_, err := orch.Send(context.Background(), &p, path)
		return sendResultMsg{title: p.Title, err: err}
	}
}
