package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mailpost/internal/config"
	"github.com/nhle/mailpost/internal/convert"
	"github.com/nhle/mailpost/internal/keys"
	"github.com/nhle/mailpost/internal/post"
	"github.com/nhle/mailpost/internal/theme"
)

// BackMsg signals the parent to navigate back to the editor.
type BackMsg struct{}

// Preview is the assembled outgoing message.
type Preview struct {
	To          string
	Subject     string
	Body        string
	Converted   bool
	MarkerFound bool // only meaningful when Converted
}

// LoadedMsg carries the assembled preview.
type LoadedMsg struct {
	Preview Preview
}

// ErrorMsg reports a failed preview build.
type ErrorMsg struct {
	Err error
}

// Build returns a command that assembles the outgoing message for p,
// running the converter when one is configured. Conversion may exec a
// subprocess, so it happens off the update loop.
func Build(cfg *config.Config, conv convert.Converter, p post.Post) tea.Cmd {
	return func() tea.Msg {
		pv := Preview{
			To:          cfg.Recipient,
			Subject:     p.Title,
			Body:        p.Content,
			MarkerFound: true,
		}

		if conv != nil {
			pv.Converted = true
			pv.MarkerFound = post.SplitAtMarker(p.Content, cfg.CutoffMarker).Found

			body, err := convert.Apply(context.Background(), conv, p.Content, cfg.CutoffMarker)
			if err != nil {
				return ErrorMsg{Err: err}
			}
			pv.Body = body
		}

		return LoadedMsg{Preview: pv}
	}
}

// Model is the outgoing-message preview view component.
type Model struct {
	preview  *Preview
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
	loading  bool
	errText  string
}

// New creates a new preview model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the preview view.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetLoading marks the preview as being assembled.
func (m *Model) SetLoading() {
	m.loading = true
	m.preview = nil
	m.errText = ""
}

// Update handles messages for the preview view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.preview = &msg.Preview
		m.loading = false
		m.errText = ""
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.errText = msg.Err.Error()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg {
				return BackMsg{}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the preview view.
func (m Model) View() string {
	centered := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	if m.loading {
		return centered.Foreground(theme.ColorGray).Render("Assembling preview...")
	}
	if m.errText != "" {
		return centered.Foreground(theme.ColorRed).Render("Preview failed:\n" + m.errText)
	}
	if m.preview == nil {
		return centered.Foreground(theme.ColorGray).Render("Nothing to preview")
	}

	return m.viewport.View()
}

// renderContent builds the full preview content string for the viewport.
func (m Model) renderContent() string {
	if m.preview == nil {
		return ""
	}

	pv := m.preview
	var sections []string

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	to := pv.To
	if to == "" {
		to = lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render("(no recipient configured)")
	} else {
		to = valStyle.Render(to)
	}

	sections = append(sections, fmt.Sprintf(
		"%s       %s", metaStyle.Render("To:"), to,
	))
	sections = append(sections, fmt.Sprintf(
		"%s  %s", metaStyle.Render("Subject:"), valStyle.Render(pv.Subject),
	))

	if pv.Converted {
		badge := theme.MarkdownBadgeStyle.Render("converted")
		if !pv.MarkerFound {
			badge += "  " + lipgloss.NewStyle().
				Foreground(theme.ColorYellow).
				Render("cutoff marker not found")
		}
		sections = append(sections, badge)
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))
	sections = append(sections, "")
	sections = append(sections, separator)
	sections = append(sections, "")

	body := pv.Body
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("Empty message")
	}
	sections = append(sections, body)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the preview view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
