package postform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mailpost/internal/theme"
)

// DoneMsg is dispatched when the form is submitted. Init distinguishes
// the initialize-existing-buffer flow from the new-post flow.
type DoneMsg struct {
	Title    string
	Category string
	Tags     string
	Init     bool
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title    string
	category string
	tags     string
}

// Model is the Bubble Tea model for the new-post / initialize form.
type Model struct {
	form             *huh.Form
	fb               *formBindings
	initMode         bool
	titleSuggestions []string
	categories       []string
	defaultTags      string
	width            int
	height           int
}

// New creates a new post form model. categories and defaultTags come
// from the configuration and seed the form fields.
func New(categories []string, defaultTags string, width, height int) Model {
	return Model{
		fb:          &formBindings{},
		categories:  categories,
		defaultTags: defaultTags,
		width:       width,
		height:      height,
	}
}

// StartNew initializes the form for creating a new post.
func (m *Model) StartNew() tea.Cmd {
	m.initMode = false
	m.titleSuggestions = nil
	m.fb.title = ""
	m.fb.category = m.defaultCategory()
	m.fb.tags = m.defaultTags
	m.form = m.buildForm()
	return m.form.Init()
}

// StartInitialize initializes the form for annotating an existing
// buffer. titleSuggestions are offered for completion, the first one
// pre-filling the title field.
func (m *Model) StartInitialize(titleSuggestions []string) tea.Cmd {
	m.initMode = true
	m.titleSuggestions = titleSuggestions
	m.fb.title = ""
	if len(titleSuggestions) > 0 {
		m.fb.title = titleSuggestions[0]
	}
	m.fb.category = m.defaultCategory()
	m.fb.tags = m.defaultTags
	m.form = m.buildForm()
	return m.form.Init()
}

func (m *Model) defaultCategory() string {
	if len(m.categories) > 0 {
		return m.categories[0]
	}
	return ""
}

// Update handles messages for the post form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the post form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Post"
	if m.initMode {
		titleText = "Initialize Post"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("Post title").
			Suggestions(m.titleSuggestions).
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewInput().
			Title("Category").
			Placeholder("general").
			Suggestions(m.categories).
			Value(&m.fb.category),
		huh.NewInput().
			Title("Tags").
			Placeholder("comma,separated,tags").
			Value(&m.fb.tags),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	done := DoneMsg{
		Title:    strings.TrimSpace(m.fb.title),
		Category: strings.TrimSpace(m.fb.category),
		Tags:     strings.TrimSpace(m.fb.tags),
		Init:     m.initMode,
	}
	return func() tea.Msg { return done }
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

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
