package draftlist

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mailpost/internal/keys"
	"github.com/nhle/mailpost/internal/post"
	"github.com/nhle/mailpost/internal/store"
	"github.com/nhle/mailpost/internal/theme"
)

// DraftsLoadedMsg is sent when drafts have been loaded from the index.
type DraftsLoadedMsg struct {
	Drafts []post.Draft
}

// SelectedDraftMsg is sent when the user opens a draft in the editor.
type SelectedDraftMsg struct {
	Draft post.Draft
}

// DeleteDraftMsg asks the app to delete the selected draft.
type DeleteDraftMsg struct {
	Draft post.Draft
}

// sortModes defines the available sort modes cycled by Tab.
var sortModes = []string{
	"updated_at",
	"title",
	"category",
	"created_at",
}

// Model is the draft list view component.
type Model struct {
	list        list.Model
	store       store.Store
	keys        *keys.KeyMap
	filter      store.DraftFilter
	sortIndex   int
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new draft list model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	delegate := DraftDelegate{}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Drafts"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search drafts..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:  l,
		store: s,
		keys:  k,
		filter: store.DraftFilter{
			SortBy:   "updated_at",
			SortDesc: true,
		},
		sortIndex:   0,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of drafts.
func (m Model) Init() tea.Cmd {
	return m.LoadDrafts()
}

// Update handles messages for the draft list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DraftsLoadedMsg:
		items := make([]list.Item, len(msg.Drafts))
		for i, d := range msg.Drafts {
			items[i] = DraftItem{Draft: d}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	// Delegate to list model for other messages
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		if query != "" {
			m.filter.Query = &query
		} else {
			m.filter.Query = nil
		}
		return m, m.LoadDrafts()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = nil
		return m, m.LoadDrafts()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		draft, ok := m.SelectedDraft()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedDraftMsg{Draft: draft}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Delete):
		draft, ok := m.SelectedDraft()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return DeleteDraftMsg{Draft: draft}
		}

	case key.Matches(msg, m.keys.ToggleSent):
		cmd := m.ToggleSent()
		return m, cmd

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(sortModes)
		m.filter.SortBy = sortModes[m.sortIndex]
		return m, m.LoadDrafts()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// ToggleSent flips whether already-sent drafts are listed.
func (m *Model) ToggleSent() tea.Cmd {
	m.filter.IncludeSent = !m.filter.IncludeSent
	return m.LoadDrafts()
}

// Searching reports whether the search input has keyboard focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// SelectedDraft returns the draft under the cursor.
func (m Model) SelectedDraft() (post.Draft, bool) {
	item, ok := m.list.SelectedItem().(DraftItem)
	if !ok {
		return post.Draft{}, false
	}
	return item.Draft, true
}

// View renders the draft list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no drafts are available.
func (m Model) renderEmptyState() string {
	hasFilters := m.filter.Query != nil || m.filter.Category != nil

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if hasFilters {
		return style.Render("No matching drafts.\nTry adjusting your search.")
	}

	return style.Render(
		"No drafts found.\n\n" +
			"Press n to start a new post.",
	)
}

// LoadDrafts returns a tea.Cmd that queries the index with the current
// filter.
func (m Model) LoadDrafts() tea.Cmd {
	filter := m.filter
	s := m.store
	return func() tea.Msg {
		drafts, err := s.GetDrafts(context.Background(), filter)
		if err != nil {
			return DraftsLoadedMsg{Drafts: nil}
		}
		return DraftsLoadedMsg{Drafts: drafts}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
