package editor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mailpost/internal/keys"
	"github.com/nhle/mailpost/internal/post"
	"github.com/nhle/mailpost/internal/store"
	"github.com/nhle/mailpost/internal/theme"
)

// OpenedMsg carries a draft and its file content into the editor.
type OpenedMsg struct {
	Draft   post.Draft
	Content string
}

// OpenErrorMsg reports a failed draft load.
type OpenErrorMsg struct {
	Err error
}

// SavedMsg is sent after the draft file was written and re-indexed.
type SavedMsg struct {
	Draft post.Draft
}

// SaveErrorMsg reports a failed save.
type SaveErrorMsg struct {
	Err error
}

// CloseMsg asks the app to leave the editor.
type CloseMsg struct{}

// SendRequestMsg asks the app to run the send flow on the current buffer.
type SendRequestMsg struct {
	Post post.Post
	Path string
}

// InitRequestMsg asks the app to collect a title and category and
// initialize the current buffer.
type InitRequestMsg struct {
	Post post.Post
	Path string

	// Line is the text under the cursor, offered as a title candidate.
	Line string
}

// PreviewRequestMsg asks the app to show the outgoing message preview.
type PreviewRequestMsg struct {
	Post post.Post
	Path string
}

// Model is the post editor view component.
type Model struct {
	textarea textarea.Model
	store    store.Store
	keys     *keys.KeyMap
	draft    post.Draft
	title    string
	saved    string // content as of the last save
	width    int
	height   int
}

// New creates a new editor model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	ta := textarea.New()
	ta.Placeholder = "Write your post..."
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(width)
	ta.SetHeight(height - 2)
	ta.Focus()

	return Model{
		textarea: ta,
		store:    s,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Open returns a command that reads the draft file from disk.
func Open(d post.Draft) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(d.Path)
		if err != nil {
			return OpenErrorMsg{Err: fmt.Errorf("reading draft %s: %w", d.Path, err)}
		}
		return OpenedMsg{Draft: d, Content: string(data)}
	}
}

// Init returns the initial command for the editor.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the editor view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenedMsg:
		m.draft = msg.Draft
		m.title = msg.Draft.Title
		m.textarea.SetValue(msg.Content)
		m.saved = msg.Content
		return m, nil

	case SavedMsg:
		m.draft = msg.Draft
		m.saved = m.textarea.Value()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// handleKeyMsg processes keyboard input for the editor.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		return m, m.save()

	case key.Matches(msg, m.keys.SendPost):
		p, path := m.Post(), m.draft.Path
		return m, func() tea.Msg {
			return SendRequestMsg{Post: p, Path: path}
		}

	case key.Matches(msg, m.keys.Initialize):
		p, path, line := m.Post(), m.draft.Path, m.currentLine()
		return m, func() tea.Msg {
			return InitRequestMsg{Post: p, Path: path, Line: line}
		}

	case key.Matches(msg, m.keys.Preview):
		p, path := m.Post(), m.draft.Path
		return m, func() tea.Msg {
			return PreviewRequestMsg{Post: p, Path: path}
		}

	case msg.String() == "esc":
		return m, func() tea.Msg {
			return CloseMsg{}
		}
	}

	// Everything else is typing.
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// currentLine returns the text of the line under the cursor.
func (m Model) currentLine() string {
	lines := strings.Split(m.textarea.Value(), "\n")
	if n := m.textarea.Line(); n >= 0 && n < len(lines) {
		return lines[n]
	}
	return ""
}

// Post returns the buffer as a post.
func (m Model) Post() post.Post {
	return post.Post{
		Title:   m.title,
		Content: m.textarea.Value(),
	}
}

// Draft returns the draft metadata backing the buffer.
func (m Model) Draft() post.Draft {
	return m.draft
}

// Dirty reports whether the buffer has unsaved changes.
func (m Model) Dirty() bool {
	return m.textarea.Value() != m.saved
}

// SetBuffer replaces the editor contents and title, e.g. after the
// initialize flow rewrote the post.
func (m *Model) SetBuffer(p post.Post) {
	m.title = p.Title
	m.textarea.SetValue(p.Content)
}

// save writes the buffer to the draft file and refreshes the index row.
func (m Model) save() tea.Cmd {
	d := m.draft
	d.Title = m.title
	content := m.textarea.Value()
	s := m.store

	return func() tea.Msg {
		if d.Path == "" {
			return SaveErrorMsg{Err: fmt.Errorf("draft has no file path")}
		}
		if err := os.WriteFile(d.Path, []byte(content), 0o644); err != nil {
			return SaveErrorMsg{Err: fmt.Errorf("writing draft %s: %w", d.Path, err)}
		}
		if s != nil {
			if err := s.UpsertDraft(context.Background(), d); err != nil {
				return SaveErrorMsg{Err: err}
			}
		}
		return SavedMsg{Draft: d}
	}
}

// View renders the editor view.
func (m Model) View() string {
	title := m.title
	if title == "" {
		title = "(untitled)"
	}

	meta := theme.HeaderStyle.Render(title)
	if m.draft.Converted {
		meta += " " + theme.MarkdownBadgeStyle.Render("md")
	}
	if m.Dirty() {
		meta += " " + theme.HelpStyle.Render("modified")
	}

	return lipgloss.JoinVertical(lipgloss.Left, meta, m.textarea.View())
}

// SetSize updates the editor dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.textarea.SetWidth(width)
	m.textarea.SetHeight(height - 2)
}
