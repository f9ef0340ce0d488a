package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mailpost/internal/post"
)

// draftsSyncedMsg reports the result of reconciling the index with the
// posts directory.
type draftsSyncedMsg struct {
	added   int
	removed int
	err     error
}

// draftDeletedMsg is sent after a draft row and its file are removed.
type draftDeletedMsg struct{ err error }

// syncDrafts reconciles the draft index with the posts directory.
func (m *Model) syncDrafts() tea.Cmd {
	cfg := m.cfg
	s := m.store

	return func() tea.Msg {
		dir, err := cfg.ResolvePostsDir()
		if err != nil {
			return draftsSyncedMsg{err: err}
		}
		added, removed, err := s.SyncDrafts(context.Background(), dir)
		return draftsSyncedMsg{added: added, removed: removed, err: err}
	}
}

// deleteDraft removes the index row and the draft file. A file that is
// already gone is fine; the next scan would have dropped the row anyway.
func (m *Model) deleteDraft(d post.Draft) tea.Cmd {
	s := m.store

	return func() tea.Msg {
		if err := s.DeleteDraft(context.Background(), d.ID); err != nil {
			return draftDeletedMsg{err: err}
		}
		if err := os.Remove(d.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return draftDeletedMsg{err: fmt.Errorf("removing %s: %w", d.Path, err)}
		}
		return draftDeletedMsg{}
	}
}
