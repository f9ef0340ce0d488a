package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DoneMsg carries the answer. Token identifies which question was
// asked, so the parent can route the result. Aborting counts as "no".
type DoneMsg struct {
	OK    bool
	Token string
}

// formBindings holds the answer on the heap so huh's Value() pointer
// remains valid across Bubble Tea model copies.
type formBindings struct {
	ok bool
}

// Model is a yes/no confirmation dialog.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	prompt string
	token  string
	width  int
	height int
}

// New creates a new confirmation model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start arms the dialog with a question. token is echoed back in DoneMsg.
func (m *Model) Start(prompt, token string) tea.Cmd {
	m.prompt = prompt
	m.token = token
	m.fb.ok = false
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Yes").
			Negative("No").
			Value(&m.fb.ok),
	)).WithWidth(m.formWidth())
	return m.form.Init()
}

// Update handles messages for the confirmation dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		ok, token := m.fb.ok, m.token
		return m, func() tea.Msg { return DoneMsg{OK: ok, Token: token} }
	}
	if m.form.State == huh.StateAborted {
		token := m.token
		return m, func() tea.Msg { return DoneMsg{OK: false, Token: token} }
	}

	return m, cmd
}

// View renders the confirmation dialog.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(m.form.View())
}

// SetSize updates the dialog dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}
